package dice

var mockFaceQueue []Face

// MockRolls prepares a sequence of deterministic faces for the next draws,
// bypassing the weighted sampler until the queue is drained.
func MockRolls(faces []Face) {
	mockFaceQueue = faces
}

// ResetMockRolls clears the deterministic queue.
func ResetMockRolls() {
	mockFaceQueue = nil
}

func popMockFace() (Face, bool) {
	if len(mockFaceQueue) == 0 {
		return "", false
	}
	f := mockFaceQueue[0]
	mockFaceQueue = mockFaceQueue[1:]
	return f, true
}
