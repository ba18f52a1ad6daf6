package catalog

import "fmt"

// invocation pairs the fetcher used to download a script with the
// interpreter it is piped into.
type invocation struct {
	Label       string
	Fetcher     string
	Interpreter string
}

// Install one-liner conventions. Python scripts get both forms because
// they run on either OS; the listing shows one line per form.
var (
	linuxInvocation   = invocation{Label: "Linux", Fetcher: "curl -sSL", Interpreter: "bash"}
	windowsInvocation = invocation{Label: "Windows", Fetcher: "Invoke-RestMethod", Interpreter: "Invoke-Expression"}
	pythonLinuxForm   = invocation{Label: "Linux", Fetcher: "curl -sSL", Interpreter: "python3"}
	pythonWindowsForm = invocation{Label: "Windows", Fetcher: "Invoke-RestMethod", Interpreter: "python"}

	platformInvocations = map[Platform][]invocation{
		PlatformLinux:   {linuxInvocation},
		PlatformWindows: {windowsInvocation},
		PlatformPython:  {pythonLinuxForm, pythonWindowsForm},
	}
)

// BuildCommand renders a copyable install one-liner. When elevate is
// set the interpreter runs under sudo; callers only pass elevate for
// Linux targets.
func BuildCommand(fetcher, url, interpreter string, elevate bool) string {
	if elevate {
		interpreter = "sudo " + interpreter
	}
	return fmt.Sprintf("%s %q | %s", fetcher, url, interpreter)
}

// InstallCommand is one rendered one-liner with its OS label.
type InstallCommand struct {
	Label   string
	Command string
}

// InstallCommands returns the one-liners for an entry, in table order.
// Root-requiring Linux scripts get the elevated variant.
func InstallCommands(entry ScriptEntry, baseURL string) []InstallCommand {
	url := joinURL(baseURL, entry.Name)

	var cmds []InstallCommand
	for _, inv := range platformInvocations[entry.Platform] {
		elevate := entry.RequiresRoot && entry.Platform == PlatformLinux
		cmds = append(cmds, InstallCommand{
			Label:   inv.Label,
			Command: BuildCommand(inv.Fetcher, url, inv.Interpreter, elevate),
		})
	}
	return cmds
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + name
}
