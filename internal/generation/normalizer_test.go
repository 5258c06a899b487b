package generation

import (
	"testing"

	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest(method model.InputMethod) *model.GenerationRequest {
	return &model.GenerationRequest{
		InputMethod: method,
		TextPrompt:  "an emerald cut solitaire",
		ImageURL:    "https://cdn.example.com/ref.png",
		JewelryType: "pendant",
	}
}

func fieldMap(fields []client.FormField) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

func fieldNames(fields []client.FormField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestCanonicalMethod_TotalAndIdempotent(t *testing.T) {
	for _, m := range model.ValidInputMethods {
		t.Run(string(m), func(t *testing.T) {
			n, err := Normalize(validRequest(m))
			require.NoError(t, err)

			assert.Contains(t, model.CanonicalMethods, n.Canonical)
			assert.Equal(t, n.Canonical, CanonicalMethod(n.Canonical))
			assert.Equal(t, n.Canonical, CanonicalMethod(CanonicalMethod(m)))
		})
	}
}

func TestCanonicalMethod_UnknownMapsToItself(t *testing.T) {
	assert.Equal(t, model.InputMethod("sketch-to-image"), CanonicalMethod("sketch-to-image"))
}

func TestCanonicalMethod_Views(t *testing.T) {
	assert.Equal(t, model.InputMethodTextToImage, CanonicalMethod(model.InputMethodRingDesign))
	assert.Equal(t, model.InputMethodTextToImage, CanonicalMethod(model.InputMethodEarringsDesign))
	assert.Equal(t, model.InputMethodTextToVideo, CanonicalMethod(model.InputMethodAIVideo))
	assert.Equal(t, model.InputMethodImageTo3D, CanonicalMethod(model.InputMethodImageTo3D))
}

func TestNormalize_DesignShorthandOverridesJewelryType(t *testing.T) {
	tests := []struct {
		method model.InputMethod
		want   string
	}{
		{model.InputMethodRingDesign, "ring"},
		{model.InputMethodNecklaceDesign, "necklace"},
		{model.InputMethodBraceletDesign, "bracelet"},
		{model.InputMethodEarringsDesign, "earrings"},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			for _, supplied := range []string{"", "necklace", "tiara"} {
				req := validRequest(tt.method)
				req.JewelryType = supplied

				n, err := Normalize(req)
				require.NoError(t, err)

				assert.Equal(t, tt.want, n.JewelryType)
				assert.Equal(t, tt.want, req.JewelryType)
				assert.Equal(t, tt.want, n.Endpoint)
				assert.Equal(t, SimpleEndpoint, n.EndpointKind)
				assert.Equal(t, "an emerald cut solitaire", fieldMap(n.Fields)[tt.want])
			}
		})
	}
}

func TestNormalize_MissingInputMethod(t *testing.T) {
	_, err := Normalize(&model.GenerationRequest{JewelryType: "ring", TextPrompt: "x"})
	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindClientInput, ge.Kind)
	assert.Equal(t, 400, ge.StatusCode)
	assert.Equal(t, CodeInvalidInputMethod, ge.Code)
	assert.Equal(t, "Missing required field: inputMethod", ge.Message)
}

func TestNormalize_InvalidInputMethod(t *testing.T) {
	_, err := Normalize(&model.GenerationRequest{InputMethod: "text-to-hologram", JewelryType: "ring", TextPrompt: "x"})
	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidInputMethod, ge.Code)
	assert.Contains(t, ge.Message, "Invalid inputMethod. Must be one of: text-to-image, text-to-video")
	assert.Contains(t, ge.Message, "ai-video")
}

func TestNormalize_MissingPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		req := validRequest(model.InputMethodTextToImage)
		req.TextPrompt = prompt

		_, err := Normalize(req)
		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, CodeMissingPrompt, ge.Code)
		assert.Equal(t, "Text prompt is required for this input method", ge.Message)
	}
}

func TestNormalize_DesignShorthandNeedsPrompt(t *testing.T) {
	req := validRequest(model.InputMethodRingDesign)
	req.TextPrompt = " "

	_, err := Normalize(req)
	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMissingPrompt, ge.Code)
}

func TestNormalize_MissingImage(t *testing.T) {
	for _, m := range []model.InputMethod{model.InputMethodImageToVideo, model.InputMethodImageTo3D} {
		req := validRequest(m)
		req.ImageURL = "  "
		req.TextPrompt = ""

		_, err := Normalize(req)
		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, CodeMissingImage, ge.Code)
		assert.Equal(t, "Image URL is required for this input method", ge.Message)
	}
}

func TestNormalize_MissingJewelryType(t *testing.T) {
	req := validRequest(model.InputMethodTextTo3D)
	req.JewelryType = "  "

	_, err := Normalize(req)
	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMissingJewelryType, ge.Code)
	assert.Equal(t, "Jewelry type is required", ge.Message)
}

func TestNormalize_SimpleEndpointFromJewelryType(t *testing.T) {
	req := validRequest(model.InputMethodTextToImage)
	req.JewelryType = " Necklace "
	req.Gender = "woman"
	req.NegativePrompt = "blurry"

	n, err := Normalize(req)
	require.NoError(t, err)

	assert.Equal(t, SimpleEndpoint, n.EndpointKind)
	assert.Equal(t, "necklace", n.Endpoint)
	assert.Equal(t, []string{"necklace", "gender", "negative"}, fieldNames(n.Fields))
	assert.Equal(t, model.InputMethodTextToImage, n.Canonical)
}

func TestNormalize_SimpleEndpointOmitsEmptyOptionalFields(t *testing.T) {
	req := validRequest(model.InputMethodBraceletDesign)

	n, err := Normalize(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"bracelet"}, fieldNames(n.Fields))
}

func TestNormalize_AIVideo(t *testing.T) {
	req := validRequest(model.InputMethodAIVideo)
	req.VideoDuration = "10"

	n, err := Normalize(req)
	require.NoError(t, err)

	assert.Equal(t, TwoPhaseEndpoint, n.EndpointKind)
	assert.Equal(t, "ai-video", n.Endpoint)
	assert.Equal(t, model.InputMethodTextToVideo, n.Canonical)
	assert.Equal(t, model.OutputTypeVideo, n.OutputType())
	assert.Equal(t, map[string]string{
		"image":  "https://cdn.example.com/ref.png",
		"prompt": "an emerald cut solitaire",
		"time":   "10",
	}, fieldMap(n.Fields))
}

func TestNormalize_AIVideoTimeDefaults(t *testing.T) {
	for _, d := range []string{"", "7", "30", "five"} {
		req := validRequest(model.InputMethodAIVideo)
		req.VideoDuration = d

		n, err := Normalize(req)
		require.NoError(t, err)
		assert.Equal(t, "5", fieldMap(n.Fields)["time"], "duration %q", d)
	}
}

func TestNormalize_AIVideoKeepsTwoPhaseForSimpleJewelry(t *testing.T) {
	req := validRequest(model.InputMethodAIVideo)
	req.JewelryType = "ring"

	n, err := Normalize(req)
	require.NoError(t, err)
	assert.Equal(t, TwoPhaseEndpoint, n.EndpointKind)
	assert.Equal(t, "ai-video", n.Endpoint)
}

func TestNormalize_AIVideoRequiresImage(t *testing.T) {
	req := validRequest(model.InputMethodAIVideo)
	req.ImageURL = ""

	_, err := Normalize(req)
	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMissingImage, ge.Code)
	assert.Equal(t, "Both imageUrl and textPrompt are required for ai-video", ge.Message)
}

func TestNormalize_WorkflowText(t *testing.T) {
	req := validRequest(model.InputMethodTextToImage)
	req.ModelProfile = "full-body"
	req.Background = "white"
	req.Resolution = "1024x1024"

	n, err := Normalize(req)
	require.NoError(t, err)

	assert.Equal(t, WorkflowEndpoint, n.EndpointKind)
	assert.Equal(t, "jewelry_text_to_image", n.Endpoint)

	fields := fieldMap(n.Fields)
	assert.Equal(t, "pendant", fields["jewelry_type"])
	assert.Equal(t, "full_body", fields["model_profile"])
	assert.Equal(t, "white_studio", fields["background_style"])
	assert.Equal(t, "1024x1024", fields["resolution"])
	assert.Equal(t, "5", fields["detail_level"])
	assert.Equal(t, "an emerald cut solitaire", fields["prompt"])
	assert.NotContains(t, fields, "image_url")
	assert.NotContains(t, fields, "duration")
}

func TestNormalize_WorkflowPassesUnknownProfilesThrough(t *testing.T) {
	req := validRequest(model.InputMethodTextTo3D)
	req.ModelProfile = "three-quarter"
	req.Background = "velvet"
	detail := 8
	req.DetailLevel = &detail

	n, err := Normalize(req)
	require.NoError(t, err)

	fields := fieldMap(n.Fields)
	assert.Equal(t, "three-quarter", fields["model_profile"])
	assert.Equal(t, "velvet", fields["background_style"])
	assert.Equal(t, "8", fields["detail_level"])
}

func TestNormalize_WorkflowImageVideo(t *testing.T) {
	req := validRequest(model.InputMethodImageToVideo)
	req.FrameRate = "60"

	n, err := Normalize(req)
	require.NoError(t, err)

	assert.Equal(t, "jewelry_image_to_video", n.Endpoint)
	fields := fieldMap(n.Fields)
	assert.Equal(t, "https://cdn.example.com/ref.png", fields["image_url"])
	assert.NotContains(t, fields, "prompt")
	assert.Equal(t, "30", fields["duration"])
	assert.Equal(t, "60", fields["frame_rate"])
	assert.Equal(t, "rotate", fields["video_style"])

	names := fieldNames(n.Fields)
	assert.Equal(t, "jewelry_type", names[0])
	assert.Equal(t, "video_style", names[len(names)-1])
}

func TestNormalize_OutputTypes(t *testing.T) {
	tests := map[model.InputMethod]model.OutputType{
		model.InputMethodTextToImage:  model.OutputTypeImage,
		model.InputMethodTextToVideo:  model.OutputTypeVideo,
		model.InputMethodImageToVideo: model.OutputTypeVideo,
		model.InputMethodImageTo3D:    model.OutputType3D,
		model.InputMethodTextTo3D:     model.OutputType3D,
		model.InputMethodRingDesign:   model.OutputTypeImage,
		model.InputMethodAIVideo:      model.OutputTypeVideo,
	}
	for m, want := range tests {
		n, err := Normalize(validRequest(m))
		require.NoError(t, err)
		assert.Equal(t, want, n.OutputType(), string(m))
	}
}
