package config

// This is the name of the shared helper that every wrapped class calls once
// its class object has been created. It can be overridden for files that
// already use this name for something else.
const DefaultHelperName = "__extendedHook"

type Options struct {
	// The module-scope name of the shared helper function. Empty means
	// "DefaultHelperName".
	HelperName string

	ASCIIOnly        bool
	MinifyWhitespace bool

	// This is only used for testing. It keeps the helper declaration out of
	// the printed output so expected test output stays readable. Calls to the
	// helper are still generated.
	OmitHelperForTests bool
}

func (options *Options) HelperNameOrDefault() string {
	if options.HelperName != "" {
		return options.HelperName
	}
	return DefaultHelperName
}
