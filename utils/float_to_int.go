package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

func Int16ToFloat32(x int16) float32 {
	return float32(x) / 32768.0
}

// IntToFloat32 normalizes an integer PCM sample of the given bit depth.
func IntToFloat32(x int, bitDepth int) float32 {
	var maxVal float32

	switch bitDepth {
	case 8:
		maxVal = 128.0
	case 16:
		maxVal = 32768.0
	case 24:
		maxVal = 8388608.0
	case 32:
		maxVal = 2147483648.0
	default:
		maxVal = 32768.0
	}

	return float32(x) / maxVal
}
