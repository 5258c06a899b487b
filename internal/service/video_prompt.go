package service

import (
	"fmt"
	"strings"

	"github.com/mafgems/api/internal/model"
)

var styleDescriptions = map[model.ModelStyle]string{
	model.ModelStyleLuxury:     "A sophisticated female model wearing haute couture, elegant and poised",
	model.ModelStyleCasual:     "A modern woman in casual chic outfit, natural and approachable",
	model.ModelStyleEditorial:  "A professional model in editorial fashion shoot style, artistic lighting",
	model.ModelStyleMinimalist: "A person in minimalist white background, clean and professional",
}

var backgroundDescriptions = map[model.VideoBackground]string{
	model.VideoBackgroundStudio:      "Professional studio lighting with white backdrop",
	model.VideoBackgroundLifestyle:   "Lifestyle setting with natural lighting and elegant decor",
	model.VideoBackgroundGradient:    "Smooth gradient background, professional and modern",
	model.VideoBackgroundTransparent: "Transparent background, product-focused",
}

// Defaults applied to jewelry video requests
const (
	DefaultBrandName   = "MAFGEMS"
	DefaultHashtagText = "#CustomJewelry #MafgGems"
)

// VideoPromptInput is a jewelry video request with defaults applied
type VideoPromptInput struct {
	GemName     string
	GemColor    string
	MetalColor  string
	JewelryType model.JewelryType
	ModelStyle  model.ModelStyle
	Background  model.VideoBackground
	IncludeText bool
	BrandName   string
	HashtagText string
}

// NewVideoPromptInput fills the optional fields of req
func NewVideoPromptInput(req *model.JewelryVideoRequest) VideoPromptInput {
	in := VideoPromptInput{
		GemName:     strings.TrimSpace(req.GemName),
		GemColor:    strings.TrimSpace(req.GemColor),
		MetalColor:  strings.TrimSpace(req.MetalColor),
		JewelryType: req.JewelryType,
		ModelStyle:  req.ModelStyle,
		Background:  req.Background,
		IncludeText: true,
		BrandName:   req.BrandName,
		HashtagText: req.HashtagText,
	}
	if in.ModelStyle == "" {
		in.ModelStyle = model.ModelStyleLuxury
	}
	if in.Background == "" {
		in.Background = model.VideoBackgroundStudio
	}
	if req.IncludeText != nil {
		in.IncludeText = *req.IncludeText
	}
	if in.BrandName == "" {
		in.BrandName = DefaultBrandName
	}
	if in.HashtagText == "" {
		in.HashtagText = DefaultHashtagText
	}
	return in
}

// BuildVideoPrompt renders the 15-second showcase prompt
func BuildVideoPrompt(in VideoPromptInput) string {
	style, ok := styleDescriptions[in.ModelStyle]
	if !ok {
		style = styleDescriptions[model.ModelStyleLuxury]
	}
	background, ok := backgroundDescriptions[in.Background]
	if !ok {
		background = backgroundDescriptions[model.VideoBackgroundStudio]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a stunning 15-second jewelry video showcasing a %s %s featuring a beautiful %s %s.\n\n",
		in.MetalColor, in.JewelryType, in.GemColor, in.GemName)
	fmt.Fprintf(&b, "Model Style: %s\n", style)
	fmt.Fprintf(&b, "Background: %s\n\n", background)
	b.WriteString("The video should:\n")
	fmt.Fprintf(&b, "- Start with a close-up of the %s on the model\n", in.JewelryType)
	b.WriteString("- Slowly rotate/showcase the piece from multiple angles\n")
	fmt.Fprintf(&b, "- Highlight the %s stone with proper light reflection\n", in.GemName)
	b.WriteString("- End with a elegant pose showing the complete look\n")
	b.WriteString("- Include smooth transitions and professional jewelry lighting\n")
	if in.IncludeText {
		fmt.Fprintf(&b, "- Display %q branding with %q at the end\n", in.BrandName, in.HashtagText)
	}
	b.WriteString("- Be optimized for Instagram Reels (1080x1920 format)\n")
	b.WriteString("- Use warm, professional lighting to enhance the jewel")

	return b.String()
}
