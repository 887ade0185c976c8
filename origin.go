package urlparser

import "strconv"

// Origin is the origin from spec §6: either a scheme/host/port tuple, or
// an opaque origin (Opaque set) that serializes as "null". No domain
// component is stored.
type Origin struct {
	Opaque bool
	Scheme string
	Host   string
	Port   int // -1 when absent
}

func (o Origin) String() string {
	if o.Opaque {
		return "null"
	}
	s := o.Scheme + "://" + o.Host
	if o.Port >= 0 {
		s += ":" + strconv.Itoa(o.Port)
	}
	return s
}

// ComputeOrigin implements spec §6's "origin" algorithm. blobInner is
// the parsed inner URL of a "blob:" URL, if the caller has one to hand
// (this module has no blob-URL-store concept of its own, so callers
// that track one pass it in; nil yields the documented "null" result
// the spec falls back to when the blob URL's origin cannot be resolved
// another way).
func ComputeOrigin(r *Record, blobInner *Record) Origin {
	switch {
	case r.Scheme == "blob":
		if blobInner != nil {
			return ComputeOrigin(blobInner, nil)
		}
		return Origin{Opaque: true}
	case r.Scheme == "ftp", r.Scheme == "http", r.Scheme == "https", r.Scheme == "ws", r.Scheme == "wss":
		port := -1
		if r.HasPort() {
			port = r.Port
		}
		return Origin{Scheme: r.Scheme, Host: SerializeHost(r.Host), Port: port}
	case r.Scheme == "file":
		return Origin{Opaque: true}
	default:
		return Origin{Opaque: true}
	}
}
