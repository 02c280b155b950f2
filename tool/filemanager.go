package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileManagerOptions configures the file management tool.
type FileManagerOptions struct {
	// BaseDir confines all operations; paths resolving outside it are
	// rejected. Defaults to the OS temp directory.
	BaseDir string
	// MaxFileSize caps read and write payloads in bytes.
	MaxFileSize int64
	// AllowedExtensions restricts which files may be written or deleted.
	AllowedExtensions []string
}

var defaultAllowedExtensions = []string{
	".txt", ".json", ".yaml", ".yml", ".md", ".py", ".js", ".html", ".css", ".csv",
}

// NewFileManagerTool builds a tool exposing guarded filesystem operations:
// read, write, list, delete and info, all confined to a base directory.
func NewFileManagerTool(optFns ...func(o *FileManagerOptions)) *FunctionTool {
	opts := FileManagerOptions{
		BaseDir:           os.TempDir(),
		MaxFileSize:       100 * 1024 * 1024,
		AllowedExtensions: defaultAllowedExtensions,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type":        "string",
				"description": "Operation to perform: read, write, list, delete or info",
				"enum":        []string{"read", "write", "list", "delete", "info"},
			},
			"path": map[string]any{
				"type":        "string",
				"description": "Path relative to the tool's base directory",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Content to write (write operation only)",
			},
		},
		"required": []string{"operation", "path"},
	}

	return NewFunctionTool(
		"file_manager",
		"Read, write, list, delete or inspect files in the agent workspace",
		schema,
		func(_ context.Context, args map[string]any) (any, error) {
			op, _ := args["operation"].(string)
			rel, _ := args["path"].(string)
			content, _ := args["content"].(string)
			return fileOperation(opts, op, rel, content)
		},
	)
}

func fileOperation(opts FileManagerOptions, op, rel, content string) (any, error) {
	path, err := resolvePath(opts.BaseDir, rel)
	if err != nil {
		return nil, err
	}

	switch op {
	case "read":
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", rel)
		}
		if info.Size() > opts.MaxFileSize {
			return nil, fmt.Errorf("file exceeds size limit (%d bytes)", opts.MaxFileSize)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rel, err)
		}
		return map[string]any{"status": "success", "path": rel, "content": string(data), "size": info.Size()}, nil

	case "write":
		if err := checkExtension(opts.AllowedExtensions, path); err != nil {
			return nil, err
		}
		if int64(len(content)) > opts.MaxFileSize {
			return nil, fmt.Errorf("content exceeds size limit (%d bytes)", opts.MaxFileSize)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create parent directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", rel, err)
		}
		return map[string]any{"status": "success", "path": rel, "bytes_written": len(content)}, nil

	case "list":
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", rel, err)
		}
		names := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			names = append(names, map[string]any{"name": e.Name(), "dir": e.IsDir()})
		}
		return map[string]any{"status": "success", "path": rel, "entries": names, "count": len(names)}, nil

	case "delete":
		if err := checkExtension(opts.AllowedExtensions, path); err != nil {
			return nil, err
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("delete %s: %w", rel, err)
		}
		return map[string]any{"status": "success", "path": rel, "deleted": true}, nil

	case "info":
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", rel)
		}
		return map[string]any{
			"status":   "success",
			"path":     rel,
			"size":     info.Size(),
			"dir":      info.IsDir(),
			"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// resolvePath joins rel to base and rejects escapes outside the base directory.
func resolvePath(base, rel string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(base, rel))
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", rel, err)
	}
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}
	if abs != baseAbs && !strings.HasPrefix(abs, baseAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes base directory: %s", rel)
	}
	return abs, nil
}

func checkExtension(allowed []string, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("extension %q not allowed", ext)
}
