package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger with a colored layer prefix.
func SetupLogger(level zerolog.Level) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	output.FormatLevel = func(i interface{}) string {
		return "" // the layer prefix replaces the level column
	}

	output.FormatPrepare = func(evt map[string]interface{}) error {
		if layer, ok := evt["layer"].(string); ok {
			var color string
			switch layer {
			case "MAIN":
				color = "\x1b[35m" // Magenta
			case "BATCH":
				color = "\x1b[32m" // Green
			case "SOLVER":
				color = "\x1b[36m" // Cyan
			default:
				color = "\x1b[37m" // White
			}

			// Worker id, then job name
			var idStr string
			if id, ok := evt["worker"]; ok {
				idStr = fmt.Sprintf("[#%v]", id)
				delete(evt, "worker")
			}

			prefix := fmt.Sprintf("%s[%-6s]%-5s\x1b[0m", color, layer, idStr)
			if job, ok := evt["job"].(string); ok {
				prefix = fmt.Sprintf("%s %s:", prefix, job)
				delete(evt, "job")
			}

			if msg, ok := evt["message"].(string); ok {
				evt["message"] = fmt.Sprintf("%s %s", prefix, msg)
			} else {
				evt["message"] = prefix
			}

			delete(evt, "layer")
		}
		return nil
	}

	log.Logger = log.Output(output).Level(level)
}
