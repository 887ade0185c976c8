package urlparser

import (
	"strconv"
	"strings"

	"github.com/region23/whatwgurl/internal/pctenc"
)

// The setters below implement spec §4.10's URL-mutation algorithms.
// Each returns false (a no-op) when r is not a valid URL or the
// mutation is a documented no-op for r's current shape, matching the
// "setter on a non-valid URL" Open Question decision in DESIGN.md.

func setProtocol(r *Record, value string) bool {
	if !r.IsValid() {
		return false
	}
	input := value + ":"
	p := &parser{}
	_, err := p.basicParse(input, nil, r, stateSchemeStart)
	return err == nil
}

func setUsername(r *Record, value string) bool {
	if !r.IsValid() || !r.HasHost() || r.Host.Serial == "" || r.Scheme == "file" {
		return false
	}
	r.setUsername(pctenc.Encode(value, pctenc.UserinfoSet))
	return true
}

func setPassword(r *Record, value string) bool {
	if !r.IsValid() || !r.HasHost() || r.Host.Serial == "" || r.Scheme == "file" {
		return false
	}
	r.setPassword(pctenc.Encode(value, pctenc.UserinfoSet))
	return true
}

func setHost(r *Record, value string) bool {
	if !r.IsValid() || r.HasOpaquePath() {
		return false
	}
	p := &parser{}
	_, err := p.basicParse(value, nil, r, stateHost)
	return err == nil
}

func setHostname(r *Record, value string) bool {
	if !r.IsValid() || r.HasOpaquePath() {
		return false
	}
	p := &parser{}
	_, err := p.basicParse(value, nil, r, stateHostname)
	return err == nil
}

func setPort(r *Record, value string) bool {
	if !r.IsValid() || !r.HasHost() || r.Host.Serial == "" || r.Scheme == "file" {
		return false
	}
	if value == "" {
		r.clearPort()
		return true
	}
	p := &parser{}
	_, err := p.basicParse(value, nil, r, statePort)
	return err == nil
}

func setPathname(r *Record, value string) bool {
	if !r.IsValid() || r.HasOpaquePath() {
		return false
	}
	r.Path = nil
	p := &parser{}
	_, err := p.basicParse(value, nil, r, statePathStart)
	return err == nil
}

func setSearch(r *Record, value string) bool {
	if !r.IsValid() {
		return false
	}
	if value == "" {
		r.clearQuery()
		return true
	}
	trimmed := strings.TrimPrefix(value, "?")
	r.setQuery("")
	p := &parser{}
	_, err := p.basicParse(trimmed, nil, r, stateQuery)
	return err == nil
}

func setHash(r *Record, value string) bool {
	if !r.IsValid() {
		return false
	}
	if value == "" {
		r.clearFragment()
		return true
	}
	trimmed := strings.TrimPrefix(value, "#")
	r.setFragment("")
	p := &parser{}
	_, err := p.basicParse(trimmed, nil, r, stateFragment)
	return err == nil
}

// setHrefPort renders n and forwards to setPort.
func setHrefPort(r *Record, n int) bool {
	return setPort(r, strconv.Itoa(n))
}
