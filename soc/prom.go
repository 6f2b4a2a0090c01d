package soc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PackFirmware reads a raw firmware image and packs it into little-endian
// 32-bit words for instruction memory. A trailing partial word is dropped.
func PackFirmware(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read firmware: %w", err)
	}

	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words, nil
}

// PackFirmwareFor packs an image and checks it fits the platform's
// instruction memory.
func PackFirmwareFor(p Platform, r io.Reader) ([]uint32, error) {
	words, err := PackFirmware(r)
	if err != nil {
		return nil, err
	}
	if len(words) > p.IMemWords {
		return nil, imageTooLarge(len(words), p.IMemWords)
	}
	return words, nil
}

func imageTooLarge(words, depth int) error {
	return fmt.Errorf("%w: %d words, instruction memory holds %d", ErrImageTooLarge, words, depth)
}
