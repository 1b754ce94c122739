package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Gruvbox Dark color palette (warm, muted, easy on eyes)
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorFg       = "\x1b[38;5;223m" // Soft cream (#ebdbb2)
	colorAqua     = "\x1b[38;5;108m" // Muted cyan-green (#8ec07c)
	colorOrange   = "\x1b[38;5;208m" // Warm orange (#fe8019)
	colorYellow   = "\x1b[38;5;214m" // Soft yellow (#fabd2f)
	colorGreen    = "\x1b[38;5;142m" // Muted green (#b8bb26)
	colorBlue     = "\x1b[38;5;109m" // Soft blue (#83a598)
	colorPurple   = "\x1b[38;5;175m" // Muted purple (#d3869b)
	colorRed      = "\x1b[38;5;167m" // Warm red (#fb4934)
	colorRedBg    = "\x1b[48;5;88m"  // Dark red background
	colorYellowBg = "\x1b[48;5;58m"  // Dark yellow background
)

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  server  Job created  42 12ms"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	// Create a base JSON encoder for field serialization (internal use only)
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	// Time
	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(componentColor(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	// Message
	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	// Fields: extract and color values
	if len(fields) > 0 {
		if extracted := extractFieldValues(fields); extracted != "" {
			final.AppendString("  ")
			final.AppendString(extracted)
		}
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// componentColor picks a consistent color per component name
func componentColor(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// abbreviateName shortens component names: server -> server, jobs.store -> j.store
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	if field.Type == zapcore.Int64Type || field.Type == zapcore.Int32Type ||
		field.Type == zapcore.Int16Type || field.Type == zapcore.Int8Type ||
		field.Type == zapcore.Uint64Type || field.Type == zapcore.Uint32Type ||
		field.Type == zapcore.Uint16Type || field.Type == zapcore.Uint8Type {
		return fmt.Sprintf("%d", field.Integer)
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}

	return ""
}

// extractFieldValues pulls just the values from well-known structured fields
// Input: {"method": "GET", "path": "/jobs", "status": 200, "duration_ms": 3}
// Output: "GET /jobs 200 3ms" (with colored IDs and numbers)
func extractFieldValues(fields []zapcore.Field) string {
	var values []string
	var method, path string

	for _, field := range fields {
		switch field.Key {
		case FieldRequestID, FieldJobID:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorBlue+val+colorReset)
			}
		case FieldMethod:
			method = getFieldValue(field)
		case FieldPath:
			path = getFieldValue(field)
		case FieldStatus:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorPurple+val+colorReset)
			}
		case FieldTotal, FieldCount:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorGreen+val+colorReset)
			}
		case FieldDurationMS:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorPurple+val+colorReset+"ms")
			}
		case FieldError:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorRed+val+colorReset)
			}
		}
	}

	// Method and path read as one unit
	if method != "" || path != "" {
		values = append([]string{colorGreen + strings.TrimSpace(method+" "+path) + colorReset}, values...)
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}
