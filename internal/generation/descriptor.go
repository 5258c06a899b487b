package generation

import "github.com/mafgems/api/internal/model"

// InputClass says which field an input method requires
type InputClass int

const (
	TextClass InputClass = iota
	ImageClass
)

// EndpointKind selects how the provider call is shaped
type EndpointKind int

const (
	// SimpleEndpoint is a jewelry-named endpoint taking one prompt field
	SimpleEndpoint EndpointKind = iota
	// WorkflowEndpoint is a jewelry_* workflow taking the full styling form
	WorkflowEndpoint
	// TwoPhaseEndpoint submits, then polls the results endpoint by id
	TwoPhaseEndpoint
)

func (k EndpointKind) String() string {
	switch k {
	case SimpleEndpoint:
		return "simple"
	case WorkflowEndpoint:
		return "workflow"
	case TwoPhaseEndpoint:
		return "two_phase"
	default:
		return "unknown"
	}
}

// Descriptor is the static routing entry for an input method
type Descriptor struct {
	Method    model.InputMethod
	Class     InputClass
	Endpoint  EndpointKind
	Output    model.OutputType
	Canonical model.InputMethod
	// Workflow is the provider endpoint for WorkflowEndpoint methods
	Workflow string
	// DesignJewelry is set for the design shorthands and overrides the
	// client supplied jewelry type
	DesignJewelry model.JewelryType
}

const aiVideoEndpoint = "ai-video"

var descriptors = map[model.InputMethod]Descriptor{
	model.InputMethodTextToImage: {
		Class: TextClass, Endpoint: WorkflowEndpoint, Output: model.OutputTypeImage,
		Canonical: model.InputMethodTextToImage, Workflow: "jewelry_text_to_image",
	},
	model.InputMethodTextToVideo: {
		Class: TextClass, Endpoint: WorkflowEndpoint, Output: model.OutputTypeVideo,
		Canonical: model.InputMethodTextToVideo, Workflow: "jewelry_text_to_video",
	},
	model.InputMethodImageToVideo: {
		Class: ImageClass, Endpoint: WorkflowEndpoint, Output: model.OutputTypeVideo,
		Canonical: model.InputMethodImageToVideo, Workflow: "jewelry_image_to_video",
	},
	model.InputMethodImageTo3D: {
		Class: ImageClass, Endpoint: WorkflowEndpoint, Output: model.OutputType3D,
		Canonical: model.InputMethodImageTo3D, Workflow: "jewelry_image_to_3d",
	},
	model.InputMethodTextTo3D: {
		Class: TextClass, Endpoint: WorkflowEndpoint, Output: model.OutputType3D,
		Canonical: model.InputMethodTextTo3D, Workflow: "jewelry_text_to_3d",
	},
	model.InputMethodRingDesign: {
		Class: TextClass, Endpoint: SimpleEndpoint, Output: model.OutputTypeImage,
		Canonical: model.InputMethodTextToImage, DesignJewelry: model.JewelryRing,
	},
	model.InputMethodNecklaceDesign: {
		Class: TextClass, Endpoint: SimpleEndpoint, Output: model.OutputTypeImage,
		Canonical: model.InputMethodTextToImage, DesignJewelry: model.JewelryNecklace,
	},
	model.InputMethodBraceletDesign: {
		Class: TextClass, Endpoint: SimpleEndpoint, Output: model.OutputTypeImage,
		Canonical: model.InputMethodTextToImage, DesignJewelry: model.JewelryBracelet,
	},
	model.InputMethodEarringsDesign: {
		Class: TextClass, Endpoint: SimpleEndpoint, Output: model.OutputTypeImage,
		Canonical: model.InputMethodTextToImage, DesignJewelry: model.JewelryEarrings,
	},
	model.InputMethodAIVideo: {
		Class: TextClass, Endpoint: TwoPhaseEndpoint, Output: model.OutputTypeVideo,
		Canonical: model.InputMethodTextToVideo, Workflow: aiVideoEndpoint,
	},
}

func init() {
	for m, d := range descriptors {
		d.Method = m
		descriptors[m] = d
	}
}

// Describe returns the descriptor for a recognised input method
func Describe(m model.InputMethod) (Descriptor, bool) {
	d, ok := descriptors[m]
	return d, ok
}

// CanonicalMethod maps any label to the one it is persisted under.
// Unknown labels map to themselves.
func CanonicalMethod(m model.InputMethod) model.InputMethod {
	if d, ok := descriptors[m]; ok {
		return d.Canonical
	}
	return m
}

// simpleEndpoints are jewelry types served by a dedicated provider endpoint
var simpleEndpoints = map[string]bool{
	string(model.JewelryRing):     true,
	string(model.JewelryNecklace): true,
	string(model.JewelryBracelet): true,
	string(model.JewelryEarrings): true,
}
