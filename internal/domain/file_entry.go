package domain

type FileKind string

const (
	FileKindDirectory FileKind = "directory"
	FileKindFile      FileKind = "file"
	FileKindLink      FileKind = "link"
)

type FileEntry struct {
	Name        string   `json:"name"`
	Kind        FileKind `json:"type"`
	Size        int64    `json:"size"`
	Permissions string   `json:"permissions"`
}

func (e FileEntry) IsDir() bool {
	return e.Kind == FileKindDirectory
}

func KindFromPermissions(permissions string) FileKind {
	switch {
	case len(permissions) == 0:
		return FileKindFile
	case permissions[0] == 'd':
		return FileKindDirectory
	case permissions[0] == 'l':
		return FileKindLink
	default:
		return FileKindFile
	}
}
