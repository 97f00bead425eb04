package gifcore

// Code is one LZW code word: a dictionary value together with the bit width
// it was emitted at. Width varies as the dictionary grows, so it travels
// with the value rather than being recomputed at decode time.
type Code struct {
	Value  uint32
	Length int
}

// EncodingResult is the output of a single Encode call: the codes produced
// and how many input bytes they account for. BytesProcessed can be less than
// len(data) when the dictionary would need a code beyond maxEncodings before the input is
// exhausted; EncodeAll uses it to pick up where Encode left off.
type EncodingResult struct {
	Codes          []Code
	BytesProcessed int
}

// getCodeLength returns the number of bits needed to hold code, i.e. the
// position of its highest set bit, counting from 1. A zero code still
// requires one bit.
func getCodeLength(code uint32) int {
	shift := 31
	for (code>>uint(shift))&1 == 0 && shift != 0 {
		shift--
	}
	return shift + 1
}

// Encode runs the dictionary LZW algorithm over data, growing a fresh
// single-byte dictionary and emitting codes until either data is exhausted
// or the dictionary would need a code beyond maxEncodings. The single-byte
// codes keep their values 0..255; every code the dictionary learns is
// numbered from 256+reservedCodes upward, leaving 256..256+reservedCodes-1
// free for out-of-band markers such as GIF's clear and end-of-information
// codes.
func Encode(data []byte, maxEncodings, reservedCodes uint32) EncodingResult {
	var encoding []Code
	dictionary := make(map[string]uint32, 256)
	for i := 0; i < 256; i++ {
		dictionary[string([]byte{byte(i)})] = uint32(i)
	}

	scanStart, scanEnd := 0, 1
	codeLength := 8
	if reservedCodes != 0 {
		codeLength = 9
	}

	for scanStart != len(data) {
		scan := data[scanStart:scanEnd]
		if _, ok := dictionary[string(scan)]; !ok {
			matching := dictionary[string(data[scanStart:scanEnd-1])]
			encoding = append(encoding, Code{Value: matching, Length: codeLength})
			newCode := uint32(len(dictionary)) + reservedCodes
			if newCode > maxEncodings {
				return EncodingResult{Codes: encoding, BytesProcessed: scanEnd - 1}
			}
			dictionary[string(scan)] = newCode
			codeLength = getCodeLength(newCode)
			scanStart = scanEnd - 1
		} else if scanEnd == len(data) {
			encoding = append(encoding, Code{Value: dictionary[string(scan)], Length: codeLength})
			scanStart = scanEnd
		} else {
			scanEnd++
		}
	}
	return EncodingResult{Codes: encoding, BytesProcessed: len(data)}
}

// EncodeAll repeatedly calls Encode over data, restarting the dictionary
// from scratch each time Encode stops short of the end (because
// maxEncodings was reached), and concatenates the resulting segments. Each
// segment is a self-contained LZW stream with its own fresh dictionary.
func EncodeAll(data []byte, maxEncodings, reservedCodes uint32) []EncodingResult {
	var results []EncodingResult
	processed := 0
	for processed < len(data) {
		result := Encode(data[processed:], maxEncodings, reservedCodes)
		processed += result.BytesProcessed
		results = append(results, result)
	}
	return results
}

// Decode reverses Encode (or one segment of EncodeAll) back into the
// original bytes. It rebuilds the same dictionary the encoder built,
// entry by entry, from the codes alone.
//
// Decode deviates from a literal LZW decoder in how it treats unknown codes:
// when a code is not yet in the dictionary, the classic algorithm assumes
// this can only be the KwKwK case and proceeds unconditionally. That
// assumption lets a corrupted stream silently decode to garbage instead of
// failing, so this implementation checks that the missing code is exactly
// the next code the dictionary is about to allocate before accepting it,
// and returns ErrCorruptStream otherwise. A first code outside the initial
// single-byte dictionary is also reported with ErrCorruptStream.
//
// An empty code list is treated as malformed input, not a degenerate
// success, and is reported with ErrEmptyCodes. Encode returns no codes for
// empty input, so an empty slice does not round-trip through Decode.
func Decode(codes []Code, reservedCodes uint32) ([]byte, error) {
	if len(codes) == 0 {
		return nil, ErrEmptyCodes
	}

	dictionary := make(map[uint32][]byte, 256)
	for i := 0; i < 256; i++ {
		dictionary[uint32(i)] = []byte{byte(i)}
	}

	var data []byte
	first, ok := dictionary[codes[0].Value]
	if !ok {
		return nil, ErrCorruptStream
	}
	previous := append([]byte(nil), first...)
	data = append(data, previous...)

	for _, current := range codes[1:] {
		var currentSubstring, newSubstring []byte
		if existing, ok := dictionary[current.Value]; ok {
			currentSubstring = existing
			newSubstring = append(append([]byte(nil), previous...), existing[0])
		} else {
			expected := uint32(len(dictionary)) + reservedCodes
			if current.Value != expected {
				return nil, ErrCorruptStream
			}
			newSubstring = append(append([]byte(nil), previous...), previous[0])
			currentSubstring = newSubstring
		}

		newCode := uint32(len(dictionary)) + reservedCodes
		dictionary[newCode] = newSubstring
		data = append(data, currentSubstring...)
		previous = currentSubstring
	}

	return data, nil
}
