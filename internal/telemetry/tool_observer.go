package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "FundMCP"

type transportKey struct{}

// WithTransport 在 context 中标记调用来自哪个传输层
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey{}, transport)
}

// TransportFrom 读取传输层标记，缺省为 unknown
func TransportFrom(ctx context.Context) string {
	if v, ok := ctx.Value(transportKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// ToolObserver 记录工具调用的 span、次数与耗时
type ToolObserver struct {
	tracer      trace.Tracer
	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewToolObserver 使用给定 meter/tracer 创建观察器
func NewToolObserver(meter metric.Meter, tracer trace.Tracer) (*ToolObserver, error) {
	invocations, err := meter.Int64Counter(
		"fund.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"fund.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &ToolObserver{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// NewGlobalToolObserver 绑定全局 provider，未配置导出时即为 no-op
func NewGlobalToolObserver() (*ToolObserver, error) {
	return NewToolObserver(otel.Meter(instrumentationName), otel.Tracer(instrumentationName))
}

// ToolCall 一次进行中的工具调用
type ToolCall struct {
	observer *ToolObserver
	span     trace.Span
	start    time.Time
	attrs    []attribute.KeyValue
}

// Start 开始观察一次调用，返回带 span 的 context
func (o *ToolObserver) Start(ctx context.Context, toolName string) (context.Context, *ToolCall) {
	call := &ToolCall{
		observer: o,
		start:    time.Now(),
		attrs: []attribute.KeyValue{
			attribute.String("tool_name", toolName),
			attribute.String("transport", TransportFrom(ctx)),
		},
	}
	if o == nil || o.tracer == nil {
		return ctx, call
	}
	ctx, call.span = o.tracer.Start(ctx, "tool.call", trace.WithAttributes(call.attrs...))
	return ctx, call
}

// End 结束观察；errorCode 为空表示成功
func (c *ToolCall) End(err error, errorCode string) {
	if c == nil || c.observer == nil {
		return
	}
	attrs := append([]attribute.KeyValue{}, c.attrs...)
	attrs = append(attrs, attribute.Bool("success", err == nil))
	if err != nil && errorCode != "" {
		attrs = append(attrs, attribute.String("error_code", errorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	c.observer.invocations.Add(ctx, 1, options)
	c.observer.latency.Record(ctx, time.Since(c.start).Seconds(), options)

	if c.span == nil {
		return
	}
	c.span.SetAttributes(attrs...)
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, errorCode)
	} else {
		c.span.SetStatus(codes.Ok, "")
	}
	c.span.End()
}
