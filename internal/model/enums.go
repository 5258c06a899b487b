package model

// InputMethod is the client-selected generation mode
type InputMethod string

const (
	InputMethodTextToImage    InputMethod = "text-to-image"
	InputMethodTextToVideo    InputMethod = "text-to-video"
	InputMethodImageToVideo   InputMethod = "image-to-video"
	InputMethodImageTo3D      InputMethod = "image-to-3d"
	InputMethodTextTo3D       InputMethod = "text-to-3d"
	InputMethodRingDesign     InputMethod = "ring-design"
	InputMethodNecklaceDesign InputMethod = "necklace-design"
	InputMethodBraceletDesign InputMethod = "bracelet-design"
	InputMethodEarringsDesign InputMethod = "earrings-design"
	InputMethodAIVideo        InputMethod = "ai-video"
)

var ValidInputMethods = []InputMethod{
	InputMethodTextToImage, InputMethodTextToVideo, InputMethodImageToVideo,
	InputMethodImageTo3D, InputMethodTextTo3D,
	InputMethodRingDesign, InputMethodNecklaceDesign, InputMethodBraceletDesign, InputMethodEarringsDesign,
	InputMethodAIVideo,
}

// CanonicalMethods are the labels generations are persisted under
var CanonicalMethods = []InputMethod{
	InputMethodTextToImage, InputMethodTextToVideo, InputMethodImageToVideo,
	InputMethodImageTo3D, InputMethodTextTo3D,
}

// OutputType of a generated asset
type OutputType string

const (
	OutputTypeImage OutputType = "image"
	OutputTypeVideo OutputType = "video"
	OutputType3D    OutputType = "3d"
)

// Jewelry types
type JewelryType string

const (
	JewelryRing     JewelryType = "ring"
	JewelryNecklace JewelryType = "necklace"
	JewelryBracelet JewelryType = "bracelet"
	JewelryEarrings JewelryType = "earrings"
)

// Generation status stored on persisted rows
const (
	GenerationStatusCompleted  = "completed"
	GenerationStatusProcessing = "processing"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Video model styles
type ModelStyle string

const (
	ModelStyleLuxury     ModelStyle = "luxury"
	ModelStyleCasual     ModelStyle = "casual"
	ModelStyleEditorial  ModelStyle = "editorial"
	ModelStyleMinimalist ModelStyle = "minimalist"
)

// Video backgrounds
type VideoBackground string

const (
	VideoBackgroundStudio      VideoBackground = "studio"
	VideoBackgroundLifestyle   VideoBackground = "lifestyle"
	VideoBackgroundGradient    VideoBackground = "gradient"
	VideoBackgroundTransparent VideoBackground = "transparent"
)
