// Package logger builds the logrus logger used by the game and its commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Formatter prints one coloured line per entry: time, level, message, then
// the fields sorted by key.
type Formatter struct {
	TimestampFormat string
	DisableColors   bool
}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelColor *color.Color

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
	case logrus.InfoLevel:
		levelColor = color.New(color.FgCyan)
	default:
		levelColor = color.New(color.FgWhite, color.Faint)
	}

	levelText := strings.ToUpper(entry.Level.String())
	if !f.DisableColors {
		levelText = levelColor.Sprint(levelText)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", entry.Time.Format(f.TimestampFormat), levelText, entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}
		fields := " {" + strings.Join(pairs, ", ") + "}"
		if !f.DisableColors {
			fields = color.New(color.FgWhite, color.Faint).Sprint(fields)
		}
		sb.WriteString(fields)
	}

	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

// New creates a logger writing to out, and also to logFile when it is set.
// Unknown levels fall back to info. The returned closer releases the file.
func New(out io.Writer, level, logFile string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	log.SetFormatter(&Formatter{
		TimestampFormat: "15:04:05",
		DisableColors:   color.NoColor,
	})

	var closer io.Closer = nopCloser{}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(out, file)
		closer = file
	}
	log.SetOutput(out)

	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
