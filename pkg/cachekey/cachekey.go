// Package cachekey computes stable, content-addressed digests for per-file
// filter results.
//
// A digest is a function of the file content, its relative path, the raw
// filter configuration, and the effective lint configuration resolved for the
// pass. Configuration sections are serialized canonically (sorted keys,
// type-tagged, length-prefixed) so that logically equal configurations always
// produce the same digest regardless of map iteration or insertion order, and
// so that any change to an option value invalidates exactly the affected
// entries. Digests are byte-stable across runs and process restarts, which
// allows the host pipeline to persist its cache to disk and reuse it.
package cachekey

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"sort"
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Digest is a 128-bit fingerprint rendered as 32 lowercase hex characters.
type Digest string

// String returns the digest as a hex string.
func (d Digest) String() string { return string(d) }

// Keyed is implemented by configuration values that carry code, such as
// callbacks and custom generators. Go offers no runtime access to a
// function's source text, so such values contribute an explicit fingerprint
// instead: CacheKey must change whenever the value's behavior changes, which
// invalidates entries cached under the old behavior.
type Keyed interface {
	CacheKey() string
}

// Builder computes digests for a fixed configuration pair.
//
// Both configuration sections are serialized once at construction; Sum then
// only hashes the per-file inputs against the pre-serialized sections. A
// Builder is safe for concurrent use.
type Builder struct {
	rawCanon      []byte
	resolvedCanon []byte
}

// NewBuilder serializes both configuration sections canonically and returns
// a Builder for them.
func NewBuilder(rawConfig, resolvedConfig map[string]any) *Builder {
	return &Builder{
		rawCanon:      Canonical(rawConfig),
		resolvedCanon: Canonical(resolvedConfig),
	}
}

// Sum returns the digest for one file under the builder's configuration.
func (b *Builder) Sum(content []byte, relPath string) Digest {
	h := murmur3.New128()
	writeField(h, content)
	writeField(h, []byte(relPath))
	writeField(h, b.rawCanon)
	writeField(h, b.resolvedCanon)
	hi, lo := h.Sum128()
	return Digest(fmt.Sprintf("%016x%016x", hi, lo))
}

// Sum is the one-shot form: it serializes both configuration sections and
// digests a single file. Prefer a Builder when keying many files under the
// same configuration.
func Sum(content []byte, relPath string, rawConfig, resolvedConfig map[string]any) Digest {
	return NewBuilder(rawConfig, resolvedConfig).Sum(content, relPath)
}

// Canonical returns the canonical serialization of a configuration value.
//
// The encoding is type-tagged and length-prefixed so distinct values can
// never collide structurally. Maps serialize with sorted keys. Values
// implementing Keyed serialize as their CacheKey fingerprint. Unrecognized
// types fall back to their fmt representation, which is deterministic for
// all comparable Go values.
func Canonical(v any) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.Bytes()
}

func writeCanonical(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case nil:
		buf.WriteByte('z')
	case Keyed:
		buf.WriteByte('k')
		writeString(buf, val.CacheKey())
	case bool:
		if val {
			buf.WriteString("b1")
		} else {
			buf.WriteString("b0")
		}
	case string:
		buf.WriteByte('s')
		writeString(buf, val)
	case int:
		writeInt(buf, int64(val))
	case int32:
		writeInt(buf, int64(val))
	case int64:
		writeInt(buf, val)
	case uint:
		buf.WriteByte('u')
		writeString(buf, strconv.FormatUint(uint64(val), 10))
	case uint64:
		buf.WriteByte('u')
		writeString(buf, strconv.FormatUint(val, 10))
	case float32:
		writeFloat(buf, float64(val))
	case float64:
		writeFloat(buf, val)
	case []string:
		buf.WriteByte('l')
		writeCount(buf, len(val))
		for _, e := range val {
			writeCanonical(buf, e)
		}
	case []any:
		buf.WriteByte('l')
		writeCount(buf, len(val))
		for _, e := range val {
			writeCanonical(buf, e)
		}
	case map[string]any:
		buf.WriteByte('m')
		writeCount(buf, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeString(buf, k)
			writeCanonical(buf, val[k])
		}
	default:
		buf.WriteByte('v')
		writeString(buf, fmt.Sprintf("%v", val))
	}
}

func writeInt(buf *bytes.Buffer, v int64) {
	buf.WriteByte('i')
	writeString(buf, strconv.FormatInt(v, 10))
}

func writeFloat(buf *bytes.Buffer, v float64) {
	buf.WriteByte('f')
	writeString(buf, strconv.FormatFloat(v, 'g', -1, 64))
}

func writeString(buf *bytes.Buffer, s string) {
	writeCount(buf, len(s))
	buf.WriteString(s)
}

func writeCount(buf *bytes.Buffer, n int) {
	var pfx [8]byte
	binary.BigEndian.PutUint64(pfx[:], uint64(n))
	buf.Write(pfx[:])
}

// writeField writes one length-prefixed hash input. Prefixing prevents a
// boundary shift in one field from being compensated by the next.
func writeField(h hash.Hash, data []byte) {
	var pfx [8]byte
	binary.BigEndian.PutUint64(pfx[:], uint64(len(data)))
	_, _ = h.Write(pfx[:])
	_, _ = h.Write(data)
}
