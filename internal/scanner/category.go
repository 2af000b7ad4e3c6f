package scanner

import (
	"strings"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
)

// categoryRules map keyword groups to categories, highest priority
// first. Only the first matching group wins: a post mentioning both
// goggles and a drone is a goggles listing.
var categoryRules = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryGoggles, []string{"goggles", "headset", "dji goggles", "fat shark", "skyzone", "eachine"}},
	{models.CategoryCompleteSetup, []string{"drone", "quad", "complete setup", "ready to fly", "rtf", "bind and fly", "bnf"}},
	{models.CategoryControllers, []string{"controller", "transmitter", "radio", "taranis", "futaba", "flysky", "radiomaster", "jumper"}},
	{models.CategoryBatteries, []string{"battery", "lipo", "li-ion", "6s", "4s", "3s", "2s"}},
	{models.CategoryElectronics, []string{"motor", "esc", "flight controller", "fc", "pdb", "receiver", "vtx", "camera", "antenna", "gps", "gimbal", "servo"}},
	{models.CategoryFrames, []string{"frame", "carbon", "arms", "chassis", "body"}},
	{models.CategoryRacing, []string{"racing", "race", "competition", "track"}},
	{models.CategoryFreestyle, []string{"freestyle", "tricks", "acro"}},
	{models.CategoryCinematic, []string{"cinematic", "cinema", "filming", "camera drone", "photography"}},
	{models.CategoryAccessories, []string{"prop", "propeller", "props", "tool", "screw", "nut", "wire", "cable", "connector"}},
}

// Categorize assigns exactly one category to the message text,
// defaulting to Other when no rule matches.
func Categorize(body string) models.Category {
	text := strings.ToLower(body)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return models.CategoryOther
}
