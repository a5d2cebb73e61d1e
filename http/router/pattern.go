package router

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// A CaptureType is the lexical class of values a capture segment admits.
type CaptureType string

const (
	// CaptureString admits any one nonempty path segment.
	CaptureString CaptureType = "string"

	// CaptureInt admits one or more decimal digits.
	CaptureInt CaptureType = "int"

	// CaptureUUID admits canonical, hyphenated UUIDs.
	CaptureUUID CaptureType = "uuid"
)

func (ct CaptureType) String() string { return string(ct) }

func (ct CaptureType) Valid() error {
	switch ct {
	case CaptureString, CaptureInt, CaptureUUID:
		return nil
	default:
		return fmt.Errorf("%w: unknown capture type %q", ErrBadPattern, string(ct))
	}
}

// admits asserts whether val satisfies the CaptureType's lexical class.
func (ct CaptureType) admits(val string) bool {
	switch ct {
	case CaptureInt:
		if val == "" {
			return false
		}
		for _, r := range val {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true

	case CaptureUUID:
		if len(val) != 36 {
			return false
		}
		_, err := uuid.Parse(val)
		return err == nil

	default:
		// a capture consumes exactly one segment,
		// so a value holding a slash can never match back
		return val != "" && !strings.Contains(val, "/")
	}
}

// A segment is one element of a compiled pattern,
// either literal text or a named, typed capture.
type segment struct {
	literal string
	capture string
	typ     CaptureType
}

func (s segment) isCapture() bool { return s.capture != "" }

// A pattern is the compiled form of a Route's path,
// an ordered sequence of literal and capture segments.
//
// A pattern is built once, when the route table is constructed,
// so no request pays for parsing it.
type pattern struct {
	raw       string
	segments  []segment
	ncaptures int
}

// parsePattern compiles raw into a pattern.
//
// Patterns begin with "/" and name each segment either verbatim
// or as a capture written "{name}" or "{name:type}".
// "/" alone is the empty pattern.
// Trailing slashes, empty segments, stray braces,
// repeated capture names and unknown capture types all fail compilation.
func parsePattern(raw string) (pattern, error) {
	if raw == "" || raw[0] != '/' {
		return pattern{}, fmt.Errorf("%w: %q must begin with a slash", ErrBadPattern, raw)
	}

	if raw == "/" {
		return pattern{raw: raw}, nil
	}

	if strings.HasSuffix(raw, "/") {
		return pattern{}, fmt.Errorf("%w: %q declares a trailing slash", ErrBadPattern, raw)
	}

	parts := strings.Split(raw[1:], "/")
	p := pattern{raw: raw, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return pattern{}, fmt.Errorf("%w: %q declares an empty segment", ErrBadPattern, raw)

		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			seg, err := parseCapture(part)
			if err != nil {
				return pattern{}, fmt.Errorf("%w: %q: %s", ErrBadPattern, raw, err)
			}

			if seen[seg.capture] {
				return pattern{}, fmt.Errorf("%w: %q repeats capture %q", ErrBadPattern, raw, seg.capture)
			}

			seen[seg.capture] = true
			p.ncaptures++
			p.segments = append(p.segments, seg)

		case strings.ContainsAny(part, "{}"):
			return pattern{}, fmt.Errorf("%w: %q has a stray brace in %q", ErrBadPattern, raw, part)

		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}

	return p, nil
}

// parseCapture compiles one "{name}" or "{name:type}" segment.
func parseCapture(part string) (segment, error) {
	name, typ, hasType := strings.Cut(part[1:len(part)-1], ":")
	if name == "" {
		return segment{}, fmt.Errorf("capture %q has no name", part)
	}

	if strings.ContainsAny(name, "{}:/") {
		return segment{}, fmt.Errorf("capture name %q is malformed", name)
	}

	seg := segment{capture: name, typ: CaptureString}
	if !hasType {
		return seg, nil
	}

	seg.typ = CaptureType(typ)
	if err := seg.typ.Valid(); err != nil {
		return segment{}, fmt.Errorf("capture %q: unknown type %q", name, typ)
	}

	return seg, nil
}

// match aligns parts against the pattern's segments,
// returning the values captured.
//
// Every literal must equal its segment,
// folding case when caseInsensitive,
// and every capture must admit its segment.
func (p pattern) match(parts []string, caseInsensitive bool) (map[string]string, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(map[string]string, p.ncaptures)
	for i, seg := range p.segments {
		val := parts[i]
		if seg.isCapture() {
			if !seg.typ.admits(val) {
				return nil, false
			}

			params[seg.capture] = val
			continue
		}

		if caseInsensitive {
			if !strings.EqualFold(seg.literal, val) {
				return nil, false
			}
			continue
		}

		if seg.literal != val {
			return nil, false
		}
	}

	return params, true
}

// build reconstructs the literal path the pattern describes,
// substituting params for captures in pattern order.
func (p pattern) build(params map[string]string) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var b strings.Builder
	b.Grow(len(p.raw))
	for _, seg := range p.segments {
		b.WriteByte('/')
		if !seg.isCapture() {
			b.WriteString(seg.literal)
			continue
		}

		val, ok := params[seg.capture]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingParam, seg.capture)
		}

		if !seg.typ.admits(val) {
			return "", fmt.Errorf("%w: %s=%q is not a %s", ErrParamConstraint, seg.capture, val, seg.typ)
		}

		b.WriteString(val)
	}

	return b.String(), nil
}
