package tools

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// SysInfoTool reports the operating system name and version
type SysInfoTool struct{}

func NewSysInfoTool() *SysInfoTool { return &SysInfoTool{} }

func (t *SysInfoTool) Name() string        { return "system" }
func (t *SysInfoTool) Aliases() []string   { return []string{"os", "platform"} }
func (t *SysInfoTool) Description() string { return "Operating system name and version" }

func (t *SysInfoTool) Execute(_ context.Context, _ string) Result {
	name := strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
	return Result{Content: fmt.Sprintf("%s %s", name, osRelease())}
}

// osRelease returns the kernel release on Linux and falls back to the
// architecture elsewhere
func osRelease() string {
	if runtime.GOOS == "linux" {
		if data, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
			if release := strings.TrimSpace(string(data)); release != "" {
				return release
			}
		}
	}
	return runtime.GOARCH
}
