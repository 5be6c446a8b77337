package domain

import "strings"

// builtinModules lists the modules the host runtime provides itself.
var builtinModules = map[string]struct{}{
	"assert": {}, "assert/strict": {}, "async_hooks": {}, "buffer": {}, "child_process": {},
	"cluster": {}, "console": {}, "constants": {}, "crypto": {}, "dgram": {},
	"diagnostics_channel": {}, "dns": {}, "dns/promises": {}, "domain": {}, "events": {},
	"fs": {}, "fs/promises": {}, "http": {}, "http2": {}, "https": {},
	"inspector": {}, "module": {}, "net": {}, "os": {}, "path": {},
	"path/posix": {}, "path/win32": {}, "perf_hooks": {}, "process": {}, "punycode": {},
	"querystring": {}, "readline": {}, "repl": {}, "stream": {}, "stream/promises": {},
	"stream/web": {}, "string_decoder": {}, "sys": {}, "timers": {}, "timers/promises": {},
	"tls": {}, "trace_events": {}, "tty": {}, "url": {}, "util": {},
	"util/types": {}, "v8": {}, "vm": {}, "wasi": {}, "worker_threads": {},
	"zlib": {},
}

// IsBuiltin reports whether request names a host builtin module.
// The "node:" scheme always denotes a builtin.
func IsBuiltin(request string) bool {
	if strings.HasPrefix(request, "node:") {
		return true
	}
	_, ok := builtinModules[request]
	return ok
}

// BuiltinName strips the "node:" scheme from a builtin request.
func BuiltinName(request string) string {
	return strings.TrimPrefix(request, "node:")
}
