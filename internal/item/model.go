package item

// Item is a product offered by the shop.
type Item struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemName string `json:"item_name" form:"item_name" gorm:"column:item_name;not null" binding:"required"`
	Price    int    `json:"price" form:"price" binding:"gte=0"`
	Quantity int    `json:"quantity" form:"quantity" binding:"gte=0"`
}

// TableName maps Item to the item table.
func (Item) TableName() string { return "item" }

// NewItem creates an Item that has not been stored yet.
func NewItem(name string, price, quantity int) Item {
	return Item{ItemName: name, Price: price, Quantity: quantity}
}
