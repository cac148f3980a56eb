package model

// The blog runs on a fixed, closed taxonomy. Order matters: category scoring
// resolves ties to the earliest declared category.

const (
	CategoryFacialAesthetics = "Facial Aesthetics"
	CategoryBodyAesthetics   = "Body Aesthetics"
	CategoryLifestyle        = "Lifestyle"
	CategoryGrooming         = "Grooming"
	CategorySurgery          = "Surgery"

	// DefaultCategory is used whenever classification finds no signal.
	DefaultCategory = CategoryLifestyle
)

// Categories lists every known category in declaration order.
var Categories = []string{
	CategoryFacialAesthetics,
	CategoryBodyAesthetics,
	CategoryLifestyle,
	CategoryGrooming,
	CategorySurgery,
}

// CategoryDescriptions is only used when a category has to be created on the
// remote blog.
var CategoryDescriptions = map[string]string{
	CategoryFacialAesthetics: "Comprehensive guides on facial enhancement, jawline development, mewing, and facial symmetry optimization.",
	CategoryBodyAesthetics:   "Physique development, posture correction, height optimization, and body composition strategies.",
	CategoryLifestyle:        "Sleep optimization, diet for aesthetics, supplementation, hormone optimization, and recovery strategies.",
	CategoryGrooming:         "Hair styling, skincare routines, fashion sense, fragrance, dental care, and personal grooming tips.",
	CategorySurgery:          "Cosmetic surgery, orthodontics, advanced procedures, and surgical enhancement options.",
}

// CategoryKeywords drives the local keyword-scoring classifier. The weights
// applied to these sets are fixed for behavior parity and must not change.
var CategoryKeywords = map[string][]string{
	CategoryFacialAesthetics: {"jawline", "mewing", "facial", "nose", "mouth", "skincare", "teeth", "jaw", "chin"},
	CategoryBodyAesthetics:   {"physique", "posture", "height", "shoulder", "waist", "muscle", "body"},
	CategoryLifestyle:        {"sleep", "diet", "supplement", "hormone", "stress", "nutrition", "lifestyle"},
	CategoryGrooming:         {"hair", "fashion", "fragrance", "dental", "grooming", "style", "wardrobe"},
	CategorySurgery:          {"surgery", "orthodontics", "steroids", "peptide", "hair transplant", "filler", "hardmaxxing"},
}
