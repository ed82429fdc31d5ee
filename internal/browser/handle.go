package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

func protoBlankPage() proto.TargetCreateTarget {
	return proto.TargetCreateTarget{URL: "about:blank"}
}

func viewport(width, height int) *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}
}

// element adapts a resolved rod element to the session's Handle.
type element struct {
	el *rod.Element
}

func (e *element) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	el := e.el.Context(ctx)
	// Select any existing content so typing replaces instead of appending.
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w", err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	return nil
}

func (e *element) TextContent(ctx context.Context) (string, error) {
	return e.propString(ctx, `() => this.textContent`)
}

func (e *element) InnerText(ctx context.Context) (string, error) {
	return e.propString(ctx, `() => this.innerText`)
}

func (e *element) InputValue(ctx context.Context) (string, error) {
	return e.propString(ctx, `() => this.value`)
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	visible, err := e.el.Context(ctx).Visible()
	if err != nil {
		return false, fmt.Errorf("visibility: %w", err)
	}
	return visible, nil
}

func (e *element) propString(ctx context.Context, js string) (string, error) {
	obj, err := e.el.Context(ctx).Eval(js)
	if err != nil {
		return "", fmt.Errorf("element eval: %w", err)
	}
	return obj.Value.Str(), nil
}
