package render

import "image/color"

// ContactStyle selects how the sidebar contact block is laid out.
type ContactStyle int

const (
	// ContactCentered wraps email and location and centers every line.
	ContactCentered ContactStyle = iota
	// ContactIcons left-aligns shortened values behind icon prefixes.
	ContactIcons
	// ContactPlain left-aligns shortened values with no prefixes.
	ContactPlain
)

// Theme is the full visual parameter set for one credential template.
// All templates share a single layout algorithm; the theme supplies the
// palette, typography sizes, and the handful of per-template offsets.
type Theme struct {
	Name string

	// Page background, a diagonal gradient from the top-left corner.
	BGTop    string
	BGBottom string

	// Sidebar. SideStops is a three-stop vertical gradient; when empty the
	// sidebar is a flat fill, optionally with a rule or stripe at its edge.
	SideStops    [3]string
	SideFlat     string
	SideDivider  string
	SideDividerW float64
	AccentStripe string

	// Photo circle and the initials badge drawn in its place.
	PhotoY        float64
	PhotoR        float64
	RingColor     string
	RingWidth     float64
	BadgeFill     string
	InitialsColor string
	InitialsSize  float64
	InitialsY     float64

	// Skills block.
	SkillsY            float64
	SkillsHeading      string
	SkillsHeadingSize  float64
	SkillsHeadingColor string
	SkillSize          float64
	SkillColor         string
	SkillGuard         float64

	// Contact block.
	ContactHeadingSize float64
	ContactStyle       ContactStyle
	ContactSize        float64
	ContactColor       string
	ContactStep        float64
	ContactGuard       float64

	// Right panel header.
	HeaderTop       float64
	NameColor       string
	ProfessionColor string
	DividerColor    string
	DividerW        float64

	// Right panel sections.
	HeadingColor      string
	BodyColor         string
	SummaryHeading    string
	ExperienceHeading string
	ExpLineCap        int
	SectionGap        float64

	// Highlight box painted behind experience and education. Nil disables it.
	BoxFill    color.Color
	BoxStroke  string
	BoxStrokeW float64

	// Footer band.
	FooterFill   string
	TaglineColor string
}

var themes = map[string]Theme{
	"template-1": {
		Name:     "template-1",
		BGTop:    "#f0f9ff",
		BGBottom: "#ffffff",

		SideStops: [3]string{"#003d99", "#0052cc", "#0066ff"},

		PhotoY:        100,
		PhotoR:        60,
		RingColor:     "#ffffff",
		RingWidth:     4,
		BadgeFill:     "#0066ff",
		InitialsColor: "#ffffff",
		InitialsSize:  40,
		InitialsY:     113,

		SkillsY:            200,
		SkillsHeading:      "CORE SKILLS",
		SkillsHeadingSize:  14,
		SkillsHeadingColor: "#ffffff",
		SkillSize:          12,
		SkillColor:         "#e0f2ff",
		SkillGuard:         120,

		ContactHeadingSize: 14,
		ContactStyle:       ContactCentered,
		ContactSize:        11,
		ContactColor:       "#e0f2ff",
		ContactStep:        18,
		ContactGuard:       100,

		HeaderTop:       25,
		NameColor:       "#003d99",
		ProfessionColor: "#0066ff",
		DividerColor:    "#66d4ff",
		DividerW:        3,

		HeadingColor:      "#003d99",
		BodyColor:         "#1a2a3a",
		SummaryHeading:    "PROFESSIONAL PROFILE",
		ExperienceHeading: "PROFESSIONAL EXPERIENCE",
		ExpLineCap:        16,
		SectionGap:        15,

		FooterFill:   "#003d99",
		TaglineColor: "#66d4ff",
	},
	"template-2": {
		Name:     "template-2",
		BGTop:    "#faf5ff",
		BGBottom: "#ffffff",

		SideStops: [3]string{"#6b21a8", "#9333ea", "#b83ef5"},

		PhotoY:        120,
		PhotoR:        70,
		RingColor:     "#ffffff",
		RingWidth:     5,
		BadgeFill:     "#e9d5ff",
		InitialsColor: "#6b21a8",
		InitialsSize:  48,
		InitialsY:     135,

		SkillsY:            240,
		SkillsHeading:      "CORE SKILLS",
		SkillsHeadingSize:  14,
		SkillsHeadingColor: "#ffffff",
		SkillSize:          12,
		SkillColor:         "#f3e8ff",
		SkillGuard:         140,

		ContactHeadingSize: 14,
		ContactStyle:       ContactIcons,
		ContactSize:        11,
		ContactColor:       "#f3e8ff",
		ContactStep:        22,

		HeaderTop:       40,
		NameColor:       "#6b21a8",
		ProfessionColor: "#9333ea",
		DividerColor:    "#d946ef",
		DividerW:        3,

		HeadingColor:      "#6b21a8",
		BodyColor:         "#1e1b2a",
		SummaryHeading:    "PROFESSIONAL PROFILE",
		ExperienceHeading: "PROFESSIONAL EXPERIENCE",
		ExpLineCap:        14,
		SectionGap:        20,

		BoxFill: color.NRGBA{R: 243, G: 232, B: 255, A: 230},

		FooterFill:   "#6b21a8",
		TaglineColor: "#d946ef",
	},
	"template-3": {
		Name:     "template-3",
		BGTop:    "#0f172a",
		BGBottom: "#1e293b",

		SideFlat:     "#1e293b",
		SideDivider:  "#475569",
		SideDividerW: 2,

		PhotoY:        120,
		PhotoR:        70,
		RingColor:     "#64748b",
		RingWidth:     3,
		BadgeFill:     "#334155",
		InitialsColor: "#cbd5e1",
		InitialsSize:  48,
		InitialsY:     135,

		SkillsY:            240,
		SkillsHeading:      "SKILLS",
		SkillsHeadingSize:  13,
		SkillsHeadingColor: "#e2e8f0",
		SkillSize:          11,
		SkillColor:         "#cbd5e1",
		SkillGuard:         140,

		ContactHeadingSize: 13,
		ContactStyle:       ContactPlain,
		ContactSize:        10,
		ContactColor:       "#94a3b8",
		ContactStep:        22,

		HeaderTop:       40,
		NameColor:       "#f1f5f9",
		ProfessionColor: "#cbd5e1",
		DividerColor:    "#64748b",
		DividerW:        2,

		HeadingColor:      "#e2e8f0",
		BodyColor:         "#cbd5e1",
		SummaryHeading:    "PROFILE",
		ExperienceHeading: "EXPERIENCE",
		ExpLineCap:        14,
		SectionGap:        20,

		BoxFill: color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 255},

		FooterFill:   "#1e293b",
		TaglineColor: "#64748b",
	},
	"template-4": {
		Name:     "template-4",
		BGTop:    "#fefcf8",
		BGBottom: "#fffbf0",

		SideStops: [3]string{"#78350f", "#a16207", "#d97706"},

		PhotoY:        100,
		PhotoR:        60,
		RingColor:     "#fbbf24",
		RingWidth:     4,
		BadgeFill:     "#fbbf24",
		InitialsColor: "#78350f",
		InitialsSize:  40,
		InitialsY:     113,

		SkillsY:            200,
		SkillsHeading:      "SKILLS",
		SkillsHeadingSize:  13,
		SkillsHeadingColor: "#ffffff",
		SkillSize:          11,
		SkillColor:         "#fcd34d",
		SkillGuard:         120,

		ContactHeadingSize: 13,
		ContactStyle:       ContactCentered,
		ContactSize:        10,
		ContactColor:       "#fcd34d",
		ContactStep:        16,
		ContactGuard:       100,

		HeaderTop:       25,
		NameColor:       "#a16207",
		ProfessionColor: "#d97706",
		DividerColor:    "#fbbf24",
		DividerW:        3,

		HeadingColor:      "#a16207",
		BodyColor:         "#1f2937",
		SummaryHeading:    "PROFESSIONAL PROFILE",
		ExperienceHeading: "PROFESSIONAL EXPERIENCE",
		ExpLineCap:        14,
		SectionGap:        20,

		BoxFill: color.NRGBA{R: 254, G: 243, B: 235, A: 242},

		FooterFill:   "#a16207",
		TaglineColor: "#fbbf24",
	},
	"template-5": {
		Name:     "template-5",
		BGTop:    "#0f172a",
		BGBottom: "#1e293b",

		SideFlat:     "#0f172a",
		AccentStripe: "#10b981",

		PhotoY:        120,
		PhotoR:        70,
		RingColor:     "#10b981",
		RingWidth:     3,
		BadgeFill:     "#10b981",
		InitialsColor: "#0f172a",
		InitialsSize:  48,
		InitialsY:     135,

		SkillsY:            240,
		SkillsHeading:      "TECH STACK",
		SkillsHeadingSize:  13,
		SkillsHeadingColor: "#10b981",
		SkillSize:          11,
		SkillColor:         "#cbd5e1",
		SkillGuard:         140,

		ContactHeadingSize: 13,
		ContactStyle:       ContactPlain,
		ContactSize:        10,
		ContactColor:       "#a7f3d0",
		ContactStep:        22,

		HeaderTop:       40,
		NameColor:       "#10b981",
		ProfessionColor: "#6ee7b7",
		DividerColor:    "#10b981",
		DividerW:        3,

		HeadingColor:      "#10b981",
		BodyColor:         "#cbd5e1",
		SummaryHeading:    "ABOUT",
		ExperienceHeading: "PROFESSIONAL EXPERIENCE",
		ExpLineCap:        14,
		SectionGap:        20,

		BoxFill:    color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 255},
		BoxStroke:  "#14b8a6",
		BoxStrokeW: 2,

		FooterFill:   "#10b981",
		TaglineColor: "#ffffff",
	},
	"template-6": {
		Name:     "template-6",
		BGTop:    "#fffbeb",
		BGBottom: "#fef3c7",

		SideStops: [3]string{"#9a3412", "#dc2626", "#f97316"},

		PhotoY:        120,
		PhotoR:        70,
		RingColor:     "#ffffff",
		RingWidth:     5,
		BadgeFill:     "#fed7aa",
		InitialsColor: "#7c2d12",
		InitialsSize:  48,
		InitialsY:     135,

		SkillsY:            240,
		SkillsHeading:      "CORE SKILLS",
		SkillsHeadingSize:  14,
		SkillsHeadingColor: "#ffffff",
		SkillSize:          12,
		SkillColor:         "#fed7aa",
		SkillGuard:         140,

		ContactHeadingSize: 14,
		ContactStyle:       ContactIcons,
		ContactSize:        11,
		ContactColor:       "#fed7aa",
		ContactStep:        22,

		HeaderTop:       40,
		NameColor:       "#9a3412",
		ProfessionColor: "#dc2626",
		DividerColor:    "#f97316",
		DividerW:        3,

		HeadingColor:      "#9a3412",
		BodyColor:         "#1f2937",
		SummaryHeading:    "PROFESSIONAL PROFILE",
		ExperienceHeading: "PROFESSIONAL EXPERIENCE",
		ExpLineCap:        14,
		SectionGap:        20,

		BoxFill: color.NRGBA{R: 0xfe, G: 0xd7, B: 0xaa, A: 255},

		FooterFill:   "#dc2626",
		TaglineColor: "#ffffff",
	},
}

// DefaultTemplate is used when a credential names no template or an
// unknown one.
const DefaultTemplate = "template-1"

// ThemeFor returns the theme for a template name, falling back to the
// default for unknown names.
func ThemeFor(template string) Theme {
	if t, ok := themes[template]; ok {
		return t
	}
	return themes[DefaultTemplate]
}

// Templates lists all known template names in stable order.
func Templates() []string {
	return []string{
		"template-1", "template-2", "template-3",
		"template-4", "template-5", "template-6",
	}
}
