package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibrange/internal/config"
	"github.com/agbru/fibrange/internal/format"
	"github.com/agbru/fibrange/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the target index or range, timeout, environment details,
// and optimization thresholds.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.RangeMode() {
		fmt.Fprintf(out, "Calculating %sF(%s)..F(%s)%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(),
			format.FormatNumberString(fmt.Sprintf("%d", cfg.Start)),
			format.FormatNumberString(fmt.Sprintf("%d", cfg.End)),
			ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		fmt.Fprintf(out, "Worker pool: %s%d%s workers.\n", ui.ColorCyan(), workers, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Calculating %sF(%s)%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), format.FormatNumberString(fmt.Sprintf("%d", cfg.N)), ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Optimization thresholds: Parallelism=%s%d%s bits.\n",
		ui.ColorCyan(), cfg.Threshold, ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
