package generation

import (
	"strconv"
	"strings"

	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/model"
)

var modelProfiles = map[string]string{
	"frontal":   "frontal_view",
	"side":      "side_view",
	"back":      "back_view",
	"full-body": "full_body",
	"detail":    "detail_close_up",
}

var backgrounds = map[string]string{
	"white":       "white_studio",
	"studio":      "studio_gradient",
	"outdoor":     "outdoor",
	"minimalist":  "minimalist",
	"custom":      "custom_color",
	"transparent": "transparent",
}

const (
	defaultDetailLevel   = 5
	defaultVideoDuration = "30"
	defaultFrameRate     = "30"
	defaultVideoStyle    = "rotate"
	defaultAIVideoTime   = "5"
)

// Normalized is a validated request shaped for one provider call
type Normalized struct {
	Request      *model.GenerationRequest
	Descriptor   Descriptor
	Canonical    model.InputMethod
	JewelryType  string
	Endpoint     string
	EndpointKind EndpointKind
	Fields       []client.FormField
}

// OutputType is the kind of asset the call produces
func (n *Normalized) OutputType() model.OutputType {
	return n.Descriptor.Output
}

// Normalize validates req and derives the provider endpoint and form payload.
// Design shorthands overwrite req.JewelryType. The returned error is always a
// *Error of kind KindClientInput.
func Normalize(req *model.GenerationRequest) (*Normalized, error) {
	if req.InputMethod == "" {
		return nil, inputError(CodeInvalidInputMethod, "Missing required field: inputMethod")
	}

	desc, ok := Describe(req.InputMethod)
	if !ok {
		return nil, inputError(CodeInvalidInputMethod, "Invalid inputMethod. Must be one of: "+validMethodList())
	}

	if desc.DesignJewelry != "" {
		req.JewelryType = string(desc.DesignJewelry)
	}

	prompt := strings.TrimSpace(req.TextPrompt)
	imageURL := strings.TrimSpace(req.ImageURL)

	switch desc.Class {
	case TextClass:
		if prompt == "" {
			return nil, inputError(CodeMissingPrompt, "Text prompt is required for this input method")
		}
	case ImageClass:
		if imageURL == "" {
			return nil, inputError(CodeMissingImage, "Image URL is required for this input method")
		}
	}

	jewelryType := strings.TrimSpace(req.JewelryType)
	if jewelryType == "" {
		return nil, inputError(CodeMissingJewelryType, "Jewelry type is required")
	}

	n := &Normalized{
		Request:     req,
		Descriptor:  desc,
		Canonical:   desc.Canonical,
		JewelryType: jewelryType,
	}

	simpleName := strings.ToLower(jewelryType)
	// ai-video is checked before the simple endpoints: an ai-video request for
	// a ring still goes through submit-and-poll, never the "ring" endpoint.
	switch {
	case desc.Endpoint == TwoPhaseEndpoint:
		if imageURL == "" {
			return nil, inputError(CodeMissingImage, "Both imageUrl and textPrompt are required for ai-video")
		}
		n.EndpointKind = TwoPhaseEndpoint
		n.Endpoint = aiVideoEndpoint
		n.Fields = []client.FormField{
			{Name: "image", Value: imageURL},
			{Name: "prompt", Value: prompt},
			{Name: "time", Value: aiVideoTime(req.VideoDuration)},
		}

	case desc.DesignJewelry != "" || simpleEndpoints[simpleName]:
		endpoint := simpleName
		if desc.DesignJewelry != "" {
			endpoint = string(desc.DesignJewelry)
		}
		n.EndpointKind = SimpleEndpoint
		n.Endpoint = endpoint
		n.Fields = simpleFields(endpoint, prompt, req)

	default:
		n.EndpointKind = WorkflowEndpoint
		n.Endpoint = desc.Workflow
		n.Fields = workflowFields(desc, jewelryType, prompt, imageURL, req)
	}

	return n, nil
}

func simpleFields(endpoint, prompt string, req *model.GenerationRequest) []client.FormField {
	fields := []client.FormField{{Name: endpoint, Value: prompt}}
	if g := strings.TrimSpace(req.Gender); g != "" {
		fields = append(fields, client.FormField{Name: "gender", Value: g})
	}
	if neg := strings.TrimSpace(req.NegativePrompt); neg != "" {
		fields = append(fields, client.FormField{Name: "negative", Value: neg})
	}
	return fields
}

func workflowFields(desc Descriptor, jewelryType, prompt, imageURL string, req *model.GenerationRequest) []client.FormField {
	detail := defaultDetailLevel
	if req.DetailLevel != nil {
		detail = *req.DetailLevel
	}

	fields := []client.FormField{
		{Name: "jewelry_type", Value: jewelryType},
		{Name: "model_profile", Value: lookup(modelProfiles, req.ModelProfile)},
		{Name: "background_style", Value: lookup(backgrounds, req.Background)},
		{Name: "output_format", Value: req.OutputFormat},
		{Name: "style_reference", Value: req.StyleReference},
		{Name: "color_palette", Value: req.ColorPalette},
		{Name: "resolution", Value: req.Resolution},
		{Name: "detail_level", Value: strconv.Itoa(detail)},
		{Name: "lighting_style", Value: req.LightingStyle},
		{Name: "model_body_type", Value: req.ModelBodyType},
		{Name: "skin_tone", Value: req.SkinTone},
		{Name: "iteration_mode", Value: req.IterationMode},
		{Name: "outfit_config", Value: req.OutfitConfig},
	}

	if desc.Class == TextClass {
		fields = append(fields, client.FormField{Name: "prompt", Value: prompt})
	} else {
		fields = append(fields, client.FormField{Name: "image_url", Value: imageURL})
	}

	if desc.Output == model.OutputTypeVideo {
		fields = append(fields,
			client.FormField{Name: "duration", Value: orDefault(req.VideoDuration, defaultVideoDuration)},
			client.FormField{Name: "frame_rate", Value: orDefault(req.FrameRate, defaultFrameRate)},
			client.FormField{Name: "video_style", Value: orDefault(req.VideoStyle, defaultVideoStyle)},
		)
	}

	return fields
}

func aiVideoTime(d string) string {
	switch strings.TrimSpace(d) {
	case "5", "10":
		return strings.TrimSpace(d)
	default:
		return defaultAIVideoTime
	}
}

func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func validMethodList() string {
	names := make([]string, len(model.ValidInputMethods))
	for i, m := range model.ValidInputMethods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
