package jsruntime

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/zerr"
)

const moduleWrapper = "(function (exports, require, module, __filename, __dirname) {"

// Runtime evaluates CommonJS modules. Every require goes through the loader's current primitives.
// A Runtime is not safe for concurrent use.
type Runtime struct {
	loader   ports.ModuleLoader
	stdout   io.Writer
	vm       *goja.Runtime
	cache    map[string]*goja.Object
	provided map[string]any
}

// NewRuntime creates a Runtime loading modules through loader. console.log writes to stdout.
func NewRuntime(loader ports.ModuleLoader, stdout io.Writer) *Runtime {
	r := &Runtime{
		loader:   loader,
		stdout:   stdout,
		vm:       goja.New(),
		cache:    make(map[string]*goja.Object),
		provided: make(map[string]any),
	}
	_ = r.vm.Set("console", map[string]any{
		"log":   r.log,
		"error": r.log,
	})
	return r
}

// Provide makes requiring path return exports without reading the file.
func (r *Runtime) Provide(path string, exports any) {
	r.provided[path] = exports
}

// Exec evaluates the entry file and returns its exports.
func (r *Runtime) Exec(entry string, args []string) (any, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrModuleLoadFailed.Error()), "path", entry)
	}

	_ = r.vm.Set("process", map[string]any{
		"argv": append([]string{"pnp", abs}, args...),
	})

	exports, err := r.load(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrModuleLoadFailed.Error()), "path", abs)
	}
	return exports.Export(), nil
}

func (r *Runtime) require(issuer string) func(string) (goja.Value, error) {
	return func(request string) (goja.Value, error) {
		ref, err := r.loader.Primitives().Resolve(request, issuer)
		if err != nil {
			return nil, err
		}
		if ref.Builtin {
			return r.builtin(ref.Path)
		}
		return r.load(ref.Path)
	}
}

func (r *Runtime) load(path string) (goja.Value, error) {
	if module, ok := r.cache[path]; ok {
		return module.Get("exports"), nil
	}
	if exports, ok := r.provided[path]; ok {
		return r.vm.ToValue(exports), nil
	}

	fsys := r.loader.Primitives().FS
	switch filepath.Ext(path) {
	case ".node":
		return nil, zerr.With(zerr.New("native addons are not supported"), "path", path)
	case ".json":
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid json module"), "path", path)
		}
		return r.vm.ToValue(value), nil
	}

	src, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}

	program, err := goja.Compile(path, moduleWrapper+string(src)+"\n})", false)
	if err != nil {
		return nil, err
	}
	wrapper, err := r.vm.RunProgram(program)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, zerr.With(zerr.New("module wrapper is not callable"), "path", path)
	}

	module := r.vm.NewObject()
	exports := r.vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}
	if err := module.Set("filename", path); err != nil {
		return nil, err
	}
	r.cache[path] = module

	_, err = fn(goja.Undefined(),
		exports,
		r.vm.ToValue(r.require(path)),
		module,
		r.vm.ToValue(path),
		r.vm.ToValue(filepath.Dir(path)),
	)
	if err != nil {
		delete(r.cache, path)
		return nil, err
	}
	return module.Get("exports"), nil
}

func (r *Runtime) builtin(name string) (goja.Value, error) {
	switch name {
	case "path":
		return r.vm.ToValue(r.pathModule()), nil
	case "fs":
		return r.vm.ToValue(r.fsModule()), nil
	default:
		return nil, zerr.With(zerr.New("builtin module is not available"), "module", name)
	}
}

func (r *Runtime) pathModule() map[string]any {
	return map[string]any{
		"sep":     "/",
		"join":    func(parts ...string) string { return filepath.Join(parts...) },
		"dirname": filepath.Dir,
		"extname": filepath.Ext,
		"basename": func(p string, ext ...string) string {
			base := filepath.Base(p)
			if len(ext) > 0 {
				base = strings.TrimSuffix(base, ext[0])
			}
			return base
		},
		"resolve": func(parts ...string) (string, error) {
			return filepath.Abs(filepath.Join(parts...))
		},
	}
}

func (r *Runtime) fsModule() map[string]any {
	fsys := func() ports.FileSystem { return r.loader.Primitives().FS }
	return map[string]any{
		"readFileSync": func(path string, _ ...string) (string, error) {
			data, err := fsys().ReadFile(path)
			return string(data), err
		},
		"existsSync": func(path string) bool {
			_, err := fsys().Stat(path)
			return err == nil
		},
		"readdirSync": func(path string) ([]string, error) {
			entries, err := fsys().ReadDir(path)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			return names, nil
		},
		"realpathSync": func(path string) (string, error) {
			return fsys().Realpath(path)
		},
	}
}

func (r *Runtime) log(args ...goja.Value) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	_, _ = fmt.Fprintln(r.stdout, strings.Join(parts, " "))
}
