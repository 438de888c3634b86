package domain

import "strings"

const HomePath = "~"

// ListingCommand builds the remote `ls -la` invocation for path. The home
// shorthand must stay unquoted for the remote shell to expand it.
func ListingCommand(path string) string {
	switch {
	case path == "" || path == HomePath:
		return "ls -la ~"
	case strings.HasPrefix(path, "~/"):
		return "ls -la ~/" + ShellQuote(strings.TrimPrefix(path, "~/"))
	default:
		return "ls -la " + ShellQuote(path)
	}
}

func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func JoinRemotePath(dir, name string) string {
	switch dir {
	case "", HomePath:
		return "~/" + name
	case "/":
		return "/" + name
	default:
		return strings.TrimSuffix(dir, "/") + "/" + name
	}
}

func ParentRemotePath(path string) string {
	if path == "" || path == HomePath || path == "/" {
		if path == "" {
			return HomePath
		}
		return path
	}

	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	parts = parts[:len(parts)-1]

	if len(parts) == 1 && parts[0] == HomePath {
		return HomePath
	}

	parent := strings.Join(parts, "/")
	if parent == "" {
		return "/"
	}

	return parent
}
