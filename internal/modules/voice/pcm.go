// README: PCM16 encoding helpers for the voice pipeline.
package voice

import (
	"encoding/binary"
	"fmt"
)

const (
	InputSampleRate  = 16000
	OutputSampleRate = 24000
	FrameSamples     = 4096
)

// EncodePCM16 converts float32 samples in [-1, 1] to little-endian 16-bit
// PCM. The scale matches DecodePCM16 so a round trip preserves samples up
// to quantization. Out-of-range samples clip.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int32(s * 32768)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}

// DecodePCM16 converts little-endian 16-bit PCM back to float32 samples.
func DecodePCM16(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("pcm data has odd length %d", len(data))
	}
	out := make([]float32, len(data)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		out[i] = float32(v) / 32768
	}
	return out, nil
}

// WrapWAV frames raw mono PCM16 in a RIFF header at the given sample rate.
func WrapWAV(pcm []byte, sampleRate int) []byte {
	const headerSize = 44
	out := make([]byte, headerSize+len(pcm))

	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+len(pcm)))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:], 1) // mono
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(out[32:], 2)
	binary.LittleEndian.PutUint16(out[34:], 16)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(len(pcm)))
	copy(out[headerSize:], pcm)
	return out
}
