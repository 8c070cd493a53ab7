package item_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/calltrace/internal/item"
	"github.com/Aleph-Alpha/calltrace/pkg/calltrace"
	"github.com/Aleph-Alpha/calltrace/pkg/logger"
)

const itemNamespace = "github.com/Aleph-Alpha/calltrace/internal"

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return logger.NewFromZap(zap.New(core), true), logs
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		if strings.HasPrefix(e.Message, "[") {
			out = append(out, e.Message)
		}
	}
	return out
}

// tracedStack wires repository, service and controller the way FXModule does.
func tracedStack(t *testing.T, lg calltrace.Logger, clock clockz.Clock) (item.ItemControllerAPI, item.Repository) {
	t.Helper()

	registry, err := calltrace.NewRegistry(
		calltrace.NewRegistration(item.NewTracedRepository),
		calltrace.NewRegistration(item.NewTracedService),
		calltrace.NewRegistration(item.NewTracedItemControllerAPI),
	)
	require.NoError(t, err)

	tracer := calltrace.NewTracer(lg, calltrace.WithClock(clock), calltrace.WithIDGenerator(func() string { return "abcd1234" }))
	ic := calltrace.NewInterceptor(tracer, calltrace.NewSelector(itemNamespace), registry, lg)

	memory := item.NewMemoryRepository()
	repo := calltrace.Wrap[item.Repository](ic, item.RepositoryName, memory)
	service := calltrace.Wrap[item.Service](ic, item.ServiceName, item.NewItemService(repo, nil))
	controller := calltrace.Wrap[item.ItemControllerAPI](ic, item.ControllerName, item.NewItemController(service, memory))
	return controller, repo
}

func TestNestedTraceAcrossLayers(t *testing.T) {
	lg, logs := newObservedLogger()
	clock := clockz.NewFakeClock()
	controller, _ := tracedStack(t, lg, clock)

	saved, err := controller.AddItem(context.Background(), item.NewItem("itemA", 1000, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	assert.Equal(t, []string{
		"[abcd1234] ItemController.AddItem()",
		"[abcd1234] |-->ItemService.SaveItem()",
		"[abcd1234] | |-->MemoryRepository.Save()",
		"[abcd1234] | |<--MemoryRepository.Save() time=0ms",
		"[abcd1234] |<--ItemService.SaveItem() time=0ms",
		"[abcd1234] ItemController.AddItem() time=0ms",
	}, messages(logs))
}

func TestTraceOfFailedLookup(t *testing.T) {
	lg, logs := newObservedLogger()
	controller, _ := tracedStack(t, lg, clockz.NewFakeClock())

	_, err := controller.GetItem(context.Background(), 9999)
	require.ErrorIs(t, err, item.ErrItemNotFound)

	lines := messages(logs)
	require.Len(t, lines, 6)
	assert.Equal(t, "[abcd1234] | |<X-MemoryRepository.FindByID() time=0ms ex=item not found: id 9999", lines[3])
	assert.Equal(t, "[abcd1234] ItemController.GetItem() time=0ms ex=item not found: id 9999", lines[5])

	failures := logs.FilterLevelExact(zapcore.WarnLevel).All()
	assert.Len(t, failures, 3)
}

func TestTraceOfEditCallsServiceTwice(t *testing.T) {
	lg, logs := newObservedLogger()
	controller, repo := tracedStack(t, lg, clockz.NewFakeClock())

	_, err := repo.Save(context.Background(), item.NewItem("itemA", 1, 1))
	require.NoError(t, err)
	logs.TakeAll()

	_, err = controller.EditItem(context.Background(), 1, item.NewItem("itemB", 2, 2))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[abcd1234] ItemController.EditItem()",
		"[abcd1234] |-->ItemService.UpdateItem()",
		"[abcd1234] | |-->MemoryRepository.Update()",
		"[abcd1234] | |<--MemoryRepository.Update() time=0ms",
		"[abcd1234] |<--ItemService.UpdateItem() time=0ms",
		"[abcd1234] |-->ItemService.FindItem()",
		"[abcd1234] | |-->MemoryRepository.FindByID()",
		"[abcd1234] | |<--MemoryRepository.FindByID() time=0ms",
		"[abcd1234] |<--ItemService.FindItem() time=0ms",
		"[abcd1234] ItemController.EditItem() time=0ms",
	}, messages(logs))
}

func TestDecoratorsAreTransparent(t *testing.T) {
	lg, _ := newObservedLogger()
	controller, repo := tracedStack(t, lg, clockz.NewFakeClock())

	traced, ok := repo.(calltrace.Traced)
	require.True(t, ok)
	assert.IsType(t, &item.MemoryRepository{}, traced.Untraced())

	saved, err := controller.AddItem(context.Background(), item.NewItem("itemA", 1, 1))
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	_, err = controller.AddItem(context.Background(), item.NewItem("", 1, 1))
	assert.True(t, errors.Is(err, item.ErrInvalidItem))
}

var traceLine = regexp.MustCompile(`^\[([0-9a-f]{8})\] (?:(?:\| )*\|(?:-->|<--|<X-))?\S+\(\)(?: time=\d+ms(?: ex=.+)?)?$`)

func TestFXModuleTracesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lg, logs := newObservedLogger()
	router := gin.New()

	app := fxtest.New(t,
		fx.Supply(calltrace.Config{TargetPackage: itemNamespace}),
		fx.Supply(router),
		fx.Provide(func() calltrace.Logger { return lg }),
		calltrace.FXModule,
		item.MemoryStorageModule,
		item.FXModule,
	)
	app.RequireStart()
	defer app.RequireStop()

	req := httptest.NewRequest(http.MethodPost, "/basic/items/add", strings.NewReader(`{"item_name":"itemA","price":1000,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	lines := messages(logs)
	require.Len(t, lines, 6)

	id := traceLine.FindStringSubmatch(lines[0])
	require.NotNil(t, id, lines[0])
	for _, line := range lines {
		assert.Regexp(t, traceLine, line)
		assert.True(t, strings.HasPrefix(line, "["+id[1]+"]"), line)
	}
	assert.Equal(t, "["+id[1]+"] ItemController.AddItem()", lines[0])
	assert.Contains(t, lines[1], "|-->ItemService.SaveItem()")
	assert.Contains(t, lines[2], "| |-->MemoryRepository.Save()")
	assert.Regexp(t, `^\[`+id[1]+`\] ItemController\.AddItem\(\) time=\d+ms$`, lines[5])

	// every trace line carries the structured correlation fields
	for _, e := range logs.All() {
		if strings.HasPrefix(e.Message, "[") {
			assert.Equal(t, id[1], e.ContextMap()["trace_id"])
		}
	}
}

func TestServiceLogLinesCarryTraceIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lg, logs := newObservedLogger()
	router := gin.New()

	app := fxtest.New(t,
		fx.Supply(calltrace.Config{TargetPackage: itemNamespace}),
		fx.Supply(router),
		fx.Provide(
			func() calltrace.Logger { return lg },
			func() item.Logger { return lg },
		),
		calltrace.FXModule,
		item.MemoryStorageModule,
		item.FXModule,
	)
	app.RequireStart()
	defer app.RequireStop()

	req := httptest.NewRequest(http.MethodPost, "/basic/items/add", strings.NewReader(`{"item_name":"itemA","price":1000,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	id := traceLine.FindStringSubmatch(messages(logs)[0])
	require.NotNil(t, id)

	saved := logs.FilterMessage("item saved").All()
	require.Len(t, saved, 1)
	fields := saved[0].ContextMap()
	assert.Equal(t, id[1], fields["trace_id"])
	assert.EqualValues(t, 1, fields["trace_level"])
	assert.EqualValues(t, 1, fields["item_id"])
}

func TestFXModuleWithoutTargetPackageLeavesComponentsUntraced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lg, logs := newObservedLogger()
	router := gin.New()

	app := fxtest.New(t,
		fx.Supply(calltrace.Config{}),
		fx.Supply(router),
		fx.Provide(func() calltrace.Logger { return lg }),
		calltrace.FXModule,
		item.MemoryStorageModule,
		item.FXModule,
	)
	app.RequireStart()
	defer app.RequireStop()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/basic/items", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, messages(logs))
	assert.Equal(t, 1, logs.FilterMessage("call tracing disabled, no target package configured").Len())
}
