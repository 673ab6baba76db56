package extract

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Context carries the transient state of a single extraction call: the
// normalized records for each document side, optional image dimensions, and
// the call's logger. A Context is created per call and discarded afterwards;
// it is never shared between calls.
type Context struct {
	// CallID identifies this extraction call in log output.
	CallID string

	Logger *zap.Logger

	// Front and Back hold the normalized records for each document side,
	// in detection order.
	Front []layout.Record
	Back  []layout.Record

	// ImageWidth and ImageHeight are the pixel dimensions of the front
	// image, or zero when unknown. Strategies that need relative
	// thresholds ("left half of the image") check for zero before using
	// them.
	ImageWidth  float64
	ImageHeight float64
}

// NewContext builds a fresh extraction context. A nil logger is replaced
// with a no-op logger.
func NewContext(front, back []model.TextDetection, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		CallID: uuid.NewString(),
		Logger: logger,
		Front:  layout.NewRecords(front),
		Back:   layout.NewRecords(back),
	}
}

// Guard runs one field extractor and converts any panic into a null field.
// A fault in one extractor must never abort the remaining fields, so every
// per-field procedure runs under Guard.
func (c *Context) Guard(field string, fn func() model.Field) (f model.Field) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Warn("field extraction failed",
				zap.String("call_id", c.CallID),
				zap.String("field", field),
				zap.Any("cause", r))
			f = model.NullField(field)
		}
	}()
	return fn()
}

// GuardFields is Guard for a procedure that produces several fields at once,
// such as a name-block split. A panic nulls all of them.
func (c *Context) GuardFields(names []string, fn func() []model.Field) (fields []model.Field) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Warn("field extraction failed",
				zap.String("call_id", c.CallID),
				zap.Strings("fields", names),
				zap.Any("cause", r))
			fields = model.NullFields(names)
		}
	}()
	return fn()
}
