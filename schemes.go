package urlparser

// specialScheme describes one of the six special schemes (spec §2,
// GLOSSARY). defaultPort is -1 for "file", which has no default port.
// Grounded on
// _examples/other_examples/5851f230_nlnwa-whatwg-url__url-parseroptions.go.go's
// defaultSpecialSchemes table.
type specialScheme struct {
	defaultPort int
}

var specialSchemes = map[string]specialScheme{
	"ftp":   {21},
	"file":  {-1},
	"http":  {80},
	"https": {443},
	"ws":    {80},
	"wss":   {443},
}

func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// defaultPortFor returns the default port for scheme, or -1 if the
// scheme is not special or is "file" (which has no default port).
func defaultPortFor(scheme string) int {
	if s, ok := specialSchemes[scheme]; ok {
		return s.defaultPort
	}
	return -1
}
