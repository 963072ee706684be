package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Show opens the rendered image with the platform viewer. It is a
// best-effort convenience behind the show_plot flag and has no effect on
// any produced data.
func Show(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open viewer: %w", err)
	}
	return nil
}
