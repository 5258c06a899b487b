package generation

import "github.com/mafgems/api/internal/model"

const placeholderImageURL = "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=1024&q=80"

var placeholderURLs = map[model.InputMethod]string{
	model.InputMethodTextToImage:  placeholderImageURL,
	model.InputMethodTextToVideo:  "https://media.coverta.ai/sample-jewelry-video.mp4",
	model.InputMethodImageToVideo: "https://media.coverta.ai/sample-jewelry-animation.mp4",
	model.InputMethodImageTo3D:    placeholderImageURL,
	model.InputMethodTextTo3D:     placeholderImageURL,
}

// PlaceholderURL returns the fixed stand-in output for a canonical method
func PlaceholderURL(canonical model.InputMethod) string {
	if u, ok := placeholderURLs[canonical]; ok {
		return u
	}
	return placeholderImageURL
}
