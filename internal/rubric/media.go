package rubric

import (
	"fmt"
	"regexp"
	"strings"
)

// Media profile categories.
const (
	CategoryImagesRequired     = "Images Required"
	CategoryAttributionVisible = "Attribution Visible"
	CategoryLicenseInformation = "License Information"
	CategoryImageStyling       = "Image Styling"
	CategoryTextStyling        = "Text Styling"
	CategoryElementStyling     = "Element Styling"
)

// requiredImages is the image count that earns full credit.
const requiredImages = 3

// classSelectorPattern matches a CSS class selector: a dot followed by an
// identifier.
var classSelectorPattern = regexp.MustCompile(`\.[a-zA-Z_][a-zA-Z0-9_-]*`)

// mediaChecks returns the checks of the media profile in rubric order.
func mediaChecks() []Check {
	return []Check{
		newCheck(CategoryImagesRequired, 2,
			"The page shows at least three images.",
			scoreImagesRequired),
		newCheck(CategoryAttributionVisible, 2,
			"Each image is credited in the element that contains it, e.g. \"Photo by ...\" in a figcaption.",
			scoreAttributionVisible),
		newCheck(CategoryLicenseInformation, 2,
			"The page names the license of the images, such as CC-BY, CC-0 or public domain.",
			scoreLicenseInformation),
		newCheck(CategoryImageStyling, 2,
			"Images carry a non-empty class attribute and the stylesheet styles it with a class selector.",
			scoreImageStyling),
		newCheck(CategoryTextStyling, 2,
			"The stylesheet uses at least two text properties such as color, font-size or text-align.",
			scoreTextStyling),
		newCheck(CategoryElementStyling, 2,
			"The stylesheet uses at least two box properties such as margin, padding or background, not only borders.",
			scoreElementStyling),
	}
}

func scoreImagesRequired(in *Input) (int, string) {
	n := in.Document.CountByTag("img")
	switch {
	case n >= requiredImages:
		return 2, fmt.Sprintf("Found %d images.", n)
	case n > 0:
		return 1, fmt.Sprintf("Found %d image(s). Add at least %d for full credit.", n, requiredImages)
	default:
		return 0, fmt.Sprintf("No images found. Add at least %d <img> elements.", requiredImages)
	}
}

func scoreAttributionVisible(in *Input) (int, string) {
	text := in.Document.ParentText("img")
	if found := matchedKeywords(text, attributionKeywords); len(found) > 0 {
		return 2, fmt.Sprintf("Attribution found next to images (%s).", strings.Join(found, ", "))
	}
	return 0, "No attribution found next to images. Place a credit such as \"Photo by ...\" in the same element as each image."
}

func scoreLicenseInformation(in *Input) (int, string) {
	if found := matchedKeywords(in.Document.Text(), licenseKeywords); len(found) > 0 {
		return 2, fmt.Sprintf("License information found (%s).", strings.Join(found, ", "))
	}
	return 0, "No license information found. Name the license of each image, e.g. CC-BY or public domain."
}

func scoreImageStyling(in *Input) (int, string) {
	classed := in.Document.CountWithValue("img", "class")
	if classed == 0 {
		return 0, "No image has a class attribute. Add a class to your images and style it in CSS."
	}
	if classSelectorPattern.MatchString(in.CSS) {
		return 2, fmt.Sprintf("%d classed image(s) and class selectors in the stylesheet.", classed)
	}
	return 1, "Images have classes, but the stylesheet contains no class selector."
}

func scoreTextStyling(in *Input) (int, string) {
	found := matchedKeywords(in.CSS, textProperties)
	switch {
	case len(found) >= 2:
		return 2, fmt.Sprintf("Text properties used: %s.", strings.Join(found, ", "))
	case len(found) == 1:
		return 1, fmt.Sprintf("Only one text property used (%s). Use at least two.", found[0])
	default:
		return 0, "No text styling found. Use properties such as color or font-size."
	}
}

func scoreElementStyling(in *Input) (int, string) {
	found := matchedKeywords(in.CSS, elementProperties)
	if len(found) < 2 {
		if len(found) == 1 {
			return 0, fmt.Sprintf("Only one element property used (%s). Use at least two.", found[0])
		}
		return 0, "No element styling found. Use properties such as margin, padding or background."
	}

	for _, prop := range found {
		if !strings.Contains(prop, "border") {
			return 2, fmt.Sprintf("Element properties used: %s.", strings.Join(found, ", "))
		}
	}
	return 1, fmt.Sprintf("Only border properties used (%s). Add spacing, sizing or background.", strings.Join(found, ", "))
}
