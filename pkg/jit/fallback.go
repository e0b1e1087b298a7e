package jit

// Fallback wraps a volatile computation with a recovery value. Resolving
// the returned Evaluable resolves primary; when that fails and match
// accepts the error, the fallback is resolved instead. A nil match accepts
// every error.
//
// This is the documented caller-side pattern for shell and network backed
// commands: the value layer itself never swallows errors, so a tile that
// wants "n/a" instead of a crash opts in explicitly.
//
//	src := jit.Fallback(weatherCmd, jit.Static("n/a"), nil)
func Fallback(primary, fallback Evaluable, match func(error) bool) Evaluable {
	return fallbackValue{primary: primary, fallback: fallback, match: match}
}

type fallbackValue struct {
	primary  Evaluable
	fallback Evaluable
	match    func(error) bool
}

func (f fallbackValue) Resolve() (any, error) {
	v, err := f.primary.Resolve()
	if err == nil {
		return v, nil
	}
	if f.match != nil && !f.match(err) {
		return nil, err
	}
	return f.fallback.Resolve()
}
