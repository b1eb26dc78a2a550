package server

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Static serves files below dir. Requests that do not resolve to a readable
// file fall through to next.
func Static(dir string) Middleware {
	return func(req *Request, res *Response, next func()) {
		p, _, _ := strings.Cut(req.Path, "?")
		p, _, _ = strings.Cut(p, "#")

		// Cleaning against "/" keeps ".." from climbing out of dir.
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		data, err := os.ReadFile(name)
		if err != nil {
			next()
			return
		}

		res.Set("Content-Type", ContentType(name))
		if err := res.Send(data); err != nil {
			slog.Error(fmt.Sprintf("http error: %s", err))
		}
	}
}
