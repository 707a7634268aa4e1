package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/bountyhub/bh/internal/telemetry"
)

// resolveOutput определяет путь для сохранения файла name.
//
//   - output пустой — текущая директория + базовое имя
//   - output — существующая директория — output + базовое имя
//   - иначе output используется как путь файла
func resolveOutput(output, name string) (string, error) {
	if output != "" {
		info, err := os.Stat(output)
		if err != nil || !info.IsDir() {
			return output, nil
		}
	}

	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive file name from %q", name)
	}

	if output != "" {
		return filepath.Join(output, base), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, base), nil
}

// writeFile записывает поток во временный файл рядом с dst и
// переименовывает его в dst. При ошибке временный файл удаляется,
// а существующий dst остаётся нетронутым.
func writeFile(dst string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	return n, nil
}

// saveStream сохраняет поток open() в dst и выводит результат.
// Поток закрывается на любом пути выхода.
func saveStream(ctx context.Context, out *Output, dst string, open func(context.Context) (io.ReadCloser, error)) error {
	body, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer body.Close()

	n, err := writeFile(dst, body)
	if err != nil {
		return err
	}

	telemetry.FromContext(ctx).Debug("file saved", "path", dst, "size", humanize.Bytes(uint64(n)))

	out.Success(fmt.Sprintf("Downloaded %s to %s", humanize.Bytes(uint64(n)), dst))
	return out.Print("", DownloadResult{Path: dst, Size: n})
}
