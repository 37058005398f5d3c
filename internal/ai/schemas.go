package ai

import "google.golang.org/genai"

func stringSchema() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func stringList(min, max int64) *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeArray,
		Items:    stringSchema(),
		MinItems: genai.Ptr(min),
		MaxItems: genai.Ptr(max),
	}
}

var synthesisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":                stringSchema(),
		"description":          stringSchema(),
		"category":             stringSchema(),
		"suggestedImagePrompt": stringSchema(),
		"mediaType":            {Type: genai.TypeString, Enum: []string{"image", "video", "3d"}},
		"videoUrl":             stringSchema(),
		"tags":                 stringList(5, 8),
	},
	Required: []string{"title", "description", "category", "suggestedImagePrompt", "mediaType", "tags"},
}

var imageDescriptionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       stringSchema(),
		"description": stringSchema(),
		"category":    stringSchema(),
		"tags":        stringList(3, 8),
	},
	Required: []string{"title", "description", "category", "tags"},
}

var placeholderSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       stringSchema(),
		"description": stringSchema(),
		"category":    stringSchema(),
		"imagePrompt": stringSchema(),
		"tags":        stringList(3, 6),
	},
	Required: []string{"title", "description", "category", "imagePrompt", "tags"},
}

var auditSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"auditType":       stringSchema(),
		"score":           {Type: genai.TypeInteger, Minimum: genai.Ptr(0.0), Maximum: genai.Ptr(100.0)},
		"findings":        stringSchema(),
		"recommendations": stringSchema(),
	},
	Required: []string{"auditType", "score", "findings", "recommendations"},
}

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"projects": {
			Type:     genai.TypeArray,
			MaxItems: genai.Ptr[int64](5),
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       stringSchema(),
					"description": stringSchema(),
					"category":    stringSchema(),
					"imageUrl":    stringSchema(),
					"demoUrl":     stringSchema(),
				},
				Required: []string{"title", "description", "category", "imageUrl"},
			},
		},
	},
	Required: []string{"projects"},
}

var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type:     genai.TypeArray,
			MinItems: genai.Ptr[int64](3),
			MaxItems: genai.Ptr[int64](3),
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       stringSchema(),
					"description": stringSchema(),
					"category":    stringSchema(),
					"tags":        stringList(4, 6),
					"imagePrompt": stringSchema(),
				},
				Required: []string{"title", "description", "category", "tags", "imagePrompt"},
			},
		},
	},
	Required: []string{"suggestions"},
}
