package cycle

import "daynight-engine/profile"

// ResolveIndex returns the index of the keyframe that owns timeOfDay.
//
// Keyframe i owns [keyframes[i].Time, keyframes[i+1].Time). The last keyframe
// owns everything from its own time to the end of the cycle and, wrapping
// around, everything before the first keyframe.
func ResolveIndex(timeOfDay float64, keyframes []profile.Keyframe) (int, error) {
	n := len(keyframes)
	if n == 0 {
		return -1, ErrNoKeyframes
	}
	for i := 0; i < n-1; i++ {
		if timeOfDay >= keyframes[i].Time && timeOfDay < keyframes[i+1].Time {
			return i, nil
		}
	}
	return n - 1, nil
}

// Resolve is ResolveIndex returning a pointer into keyframes.
func Resolve(timeOfDay float64, keyframes []profile.Keyframe) (*profile.Keyframe, error) {
	i, err := ResolveIndex(timeOfDay, keyframes)
	if err != nil {
		return nil, err
	}
	return &keyframes[i], nil
}
