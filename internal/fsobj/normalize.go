package fsobj

// AppendPathSep returns dir with a trailing path separator appended when dir
// is non-empty, does not already end with one, and the result still fits a
// buffer of the given capacity with its terminator. Otherwise dir is
// returned unchanged.
//
// Callers are expected to have verified dir through the gate first.
func AppendPathSep(dir string, capacity int) string {
	if len(dir) == 0 {
		return dir
	}
	if dir[len(dir)-1] == '/' {
		return dir
	}
	if len(dir)+1 > capacity-1 {
		return dir
	}
	return dir + "/"
}
