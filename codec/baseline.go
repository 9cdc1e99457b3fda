// Package codec registers the baseline JPEG decoder under a small lookup
// surface, trimmed from the teacher's go-dicom-codec Codec/Registry/errors
// trio (codec.go, registry.go, errors.go) down to the parts this decode-only
// module actually exercises: the teacher's generality — Options/BaseOptions
// for quality-tunable lossy codecs, dual name-and-UID registry keys for a
// multi-codec DICOM transfer-syntax table — has no referent here, since
// there is exactly one codec and no DICOM container to key it against.
package codec

import (
	"errors"
	"sync"

	"github.com/cocosip/go-jpeg-baseline/jpeg"
)

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter indicates encode parameters that no baseline JPEG
	// frame could ever represent (wrong component count, wrong bit depth).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedFormat indicates an otherwise well-formed request this
	// codec doesn't implement (here: any encode request at all).
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// EncodeParams describes pixel data a caller wants encoded.
type EncodeParams struct {
	PixelData  []byte
	Width      int
	Height     int
	Components int
	BitDepth   int
}

// validate checks params against what a baseline JPEG frame could represent
// (spec.md §3 FrameHeader: Nf ∈ {1,3}, 8-bit precision), independent of
// whether encoding itself is implemented.
func (p EncodeParams) validate() error {
	if p.Components != 1 && p.Components != 3 {
		return ErrInvalidParameter
	}
	if p.BitDepth != 8 {
		return ErrInvalidParameter
	}
	return nil
}

// DecodeResult is the decoded pixel data plus the geometry needed to
// interpret it.
type DecodeResult struct {
	PixelData  []byte
	Width      int
	Height     int
	Components int
	BitDepth   int
}

// Codec is the encode/decode/identify surface the registry stores.
type Codec interface {
	Encode(EncodeParams) ([]byte, error)
	Decode(data []byte) (*DecodeResult, error)
	UID() string
	Name() string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Codec)
)

// Register adds codec to the default registry, keyed by its UID.
func Register(c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.UID()] = c
}

// Get retrieves a codec by UID.
func Get(uid string) (Codec, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[uid]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return c, nil
}

// BaselineJPEGUID keys this codec in the registry in place of a DICOM
// transfer syntax UID, which has no meaning outside a DICOM container (see
// SPEC_FULL.md's DOMAIN STACK section on why go-dicom itself was dropped).
const BaselineJPEGUID = "1.2.840.10008.jpeg.baseline"

// BaselineJPEGCodec adapts jpeg.Decode to Codec. Encoding is out of spec.md's
// scope (§1 Non-goals) and always fails once past parameter validation.
type BaselineJPEGCodec struct{}

// NewBaselineJPEGCodec constructs the adapter. There is no quality parameter
// (unlike the teacher's NewBaselineCodec(quality)) because this decoder never
// encodes.
func NewBaselineJPEGCodec() *BaselineJPEGCodec {
	return &BaselineJPEGCodec{}
}

func (c *BaselineJPEGCodec) UID() string  { return BaselineJPEGUID }
func (c *BaselineJPEGCodec) Name() string { return "JPEG Baseline (decode-only)" }

// Encode validates params against what a baseline JPEG frame could
// represent, then fails: this module implements decoding only.
func (c *BaselineJPEGCodec) Encode(params EncodeParams) ([]byte, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupportedFormat
}

// Decode runs the full baseline JPEG pipeline (jpeg.Decode) and adapts its
// result to DecodeResult.
func (c *BaselineJPEGCodec) Decode(data []byte) (*DecodeResult, error) {
	res, err := jpeg.Decode(data)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{
		PixelData:  res.Pixels,
		Width:      res.Width,
		Height:     res.Height,
		Components: res.Channels,
		BitDepth:   8,
	}, nil
}

// RegisterBaselineJPEGCodec registers a BaselineJPEGCodec in the default
// registry, grounded on the teacher's RegisterBaselineCodec/init() pattern.
func RegisterBaselineJPEGCodec() {
	Register(NewBaselineJPEGCodec())
}
