package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/brazier-go/pkg/mediator"
)

// Ping answers with a fixed reply
type Ping struct {
	mediator.Returns[string]
}

// TestRequest answers with a number
type TestRequest struct {
	mediator.Returns[int64]
}

type testRequestHandler struct {
	result int64
	err    error
	calls  int
}

func (h *testRequestHandler) Handle(ctx context.Context, request TestRequest) (int64, error) {
	h.calls++
	if h.err != nil {
		return 0, h.err
	}
	return h.result, nil
}

type mediatorContext struct {
	mediator    *mediator.Mediator
	testHandler *testRequestHandler
	handlerErr  error
	reply       string
	results     []int64
	err         error
}

func (mc *mediatorContext) reset() {
	mc.mediator = nil
	mc.testHandler = nil
	mc.handlerErr = nil
	mc.reply = ""
	mc.results = nil
	mc.err = nil
}

func (mc *mediatorContext) aNewMediator() error {
	mc.mediator = mediator.New()
	return nil
}

func (mc *mediatorContext) registerPing(reply string) {
	mediator.RegisterHandlerFunc[Ping, string](mc.mediator, func(ctx context.Context, request Ping) (string, error) {
		return reply, nil
	})
}

func (mc *mediatorContext) registerTestRequest(h *testRequestHandler) {
	mc.testHandler = h
	mediator.RegisterHandler[TestRequest, int64](mc.mediator, h)
}

func (mc *mediatorContext) aHandlerForPingThatReplies(reply string) error {
	mc.registerPing(reply)
	return nil
}

func (mc *mediatorContext) aHandlerForTestRequestThatReturns(result int64) error {
	mc.registerTestRequest(&testRequestHandler{result: result})
	return nil
}

func (mc *mediatorContext) aHandlerForTestRequestThatFailsWith(message string) error {
	mc.handlerErr = errors.New(message)
	mc.registerTestRequest(&testRequestHandler{err: mc.handlerErr})
	return nil
}

func (mc *mediatorContext) handlersRegisteredAsFollows(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		switch row["request"] {
		case "Ping":
			mc.registerPing(row["response"])
		case "TestRequest":
			result, err := strconv.ParseInt(row["response"], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid TestRequest response %q: %w", row["response"], err)
			}
			mc.registerTestRequest(&testRequestHandler{result: result})
		default:
			return fmt.Errorf("unknown request type %q", row["request"])
		}
	}
	return nil
}

func (mc *mediatorContext) iSendAPing() error {
	mc.reply, mc.err = mediator.Send[string](context.Background(), mc.mediator, Ping{})
	return nil
}

func (mc *mediatorContext) iSendATestRequest() error {
	return mc.iSendATestRequestTimes(1)
}

func (mc *mediatorContext) iSendATestRequestTimes(times int) error {
	for i := 0; i < times; i++ {
		result, err := mediator.Send[int64](context.Background(), mc.mediator, TestRequest{})
		mc.err = err
		if err != nil {
			return nil
		}
		mc.results = append(mc.results, result)
	}
	return nil
}

func (mc *mediatorContext) theReplyShouldBe(expected string) error {
	if mc.err != nil {
		return fmt.Errorf("expected reply %q but send failed: %w", expected, mc.err)
	}
	if mc.reply != expected {
		return fmt.Errorf("expected reply %q, got %q", expected, mc.reply)
	}
	return nil
}

func (mc *mediatorContext) everyResultShouldBe(expected int64) error {
	if mc.err != nil {
		return fmt.Errorf("expected results but send failed: %w", mc.err)
	}
	if len(mc.results) == 0 {
		return fmt.Errorf("no results recorded")
	}
	for i, result := range mc.results {
		if result != expected {
			return fmt.Errorf("result %d: expected %d, got %d", i, expected, result)
		}
	}
	return nil
}

func (mc *mediatorContext) theTestRequestHandlerShouldHaveBeenCalledTimes(expected int) error {
	if mc.testHandler == nil {
		return fmt.Errorf("no TestRequest handler registered")
	}
	if mc.testHandler.calls != expected {
		return fmt.Errorf("expected %d calls, got %d", expected, mc.testHandler.calls)
	}
	return nil
}

func (mc *mediatorContext) theSendShouldFailWithHandlerNotRegistered() error {
	if !mediator.IsHandlerNotRegistered(mc.err) {
		return fmt.Errorf("expected handler not registered error, got %v", mc.err)
	}
	return nil
}

func (mc *mediatorContext) theSendShouldFailWithTheHandlersError() error {
	if mc.err != mc.handlerErr {
		return fmt.Errorf("expected handler error %v unchanged, got %v", mc.handlerErr, mc.err)
	}
	return nil
}

func (mc *mediatorContext) sendingEachRequestShouldProduce(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		var got string
		switch row["request"] {
		case "Ping":
			reply, err := mediator.Send[string](context.Background(), mc.mediator, Ping{})
			if err != nil {
				return fmt.Errorf("send Ping: %w", err)
			}
			got = reply
		case "TestRequest":
			result, err := mediator.Send[int64](context.Background(), mc.mediator, TestRequest{})
			if err != nil {
				return fmt.Errorf("send TestRequest: %w", err)
			}
			got = strconv.FormatInt(result, 10)
		default:
			return fmt.Errorf("unknown request type %q", row["request"])
		}
		if got != row["response"] {
			return fmt.Errorf("%s: expected %q, got %q", row["request"], row["response"], got)
		}
	}
	return nil
}

// tableRows maps each data row to its header cells
func tableRows(table *messages.PickleTable) ([]map[string]string, error) {
	if table == nil || len(table.Rows) < 1 {
		return nil, fmt.Errorf("table must have a header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(row.Cells), len(header))
		}
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

// InitializeMediatorScenario registers the mediator dispatch steps
func InitializeMediatorScenario(ctx *godog.ScenarioContext) {
	mc := &mediatorContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		mc.reset()
		return c, nil
	})

	ctx.Step(`^a new mediator$`, mc.aNewMediator)
	ctx.Step(`^a handler for Ping that replies "([^"]*)"$`, mc.aHandlerForPingThatReplies)
	ctx.Step(`^a handler for TestRequest that returns (\d+)$`, mc.aHandlerForTestRequestThatReturns)
	ctx.Step(`^a handler for TestRequest that fails with "([^"]*)"$`, mc.aHandlerForTestRequestThatFailsWith)
	ctx.Step(`^handlers registered as follows:$`, mc.handlersRegisteredAsFollows)
	ctx.Step(`^I send a Ping$`, mc.iSendAPing)
	ctx.Step(`^I send a TestRequest$`, mc.iSendATestRequest)
	ctx.Step(`^I send a TestRequest (\d+) times$`, mc.iSendATestRequestTimes)
	ctx.Step(`^the reply should be "([^"]*)"$`, mc.theReplyShouldBe)
	ctx.Step(`^every result should be (\d+)$`, mc.everyResultShouldBe)
	ctx.Step(`^the TestRequest handler should have been called (\d+) times$`, mc.theTestRequestHandlerShouldHaveBeenCalledTimes)
	ctx.Step(`^the send should fail with handler not registered$`, mc.theSendShouldFailWithHandlerNotRegistered)
	ctx.Step(`^the send should fail with the handler's error$`, mc.theSendShouldFailWithTheHandlersError)
	ctx.Step(`^sending each request should produce:$`, mc.sendingEachRequestShouldProduce)
}
