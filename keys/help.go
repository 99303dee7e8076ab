package keys

import "sort"

// HelpCategory organizes commands by function
type HelpCategory string

const (
	HelpCategoryNavigation HelpCategory = "Navigation"
	HelpCategoryImages     HelpCategory = "Images"
	HelpCategoryOther      HelpCategory = "Other"
	HelpCategoryUncategory HelpCategory = "Uncategorized" // For keys without categories
)

// categoryOrder is the order categories are shown in help screens.
var categoryOrder = map[HelpCategory]int{
	HelpCategoryNavigation: 1,
	HelpCategoryImages:     2,
	HelpCategoryOther:      3,
	HelpCategoryUncategory: 4,
}

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string       // Extended description for help text
	Category    HelpCategory // Category for organizing in help screens
}

// KeyHelpMap maps KeyNames to their help information
var KeyHelpMap = map[KeyName]KeyHelpInfo{
	KeyNext:  {Description: "Next image (Vim j/l keys supported)", Category: HelpCategoryNavigation},
	KeyPrev:  {Description: "Previous image (Vim k/h keys supported)", Category: HelpCategoryNavigation},
	KeyFirst: {Description: "First image", Category: HelpCategoryNavigation},
	KeyLast:  {Description: "Last viewable image", Category: HelpCategoryNavigation},

	KeyKeep: {Description: "Copy the current image to the destination folder", Category: HelpCategoryImages},
	KeyYank: {Description: "Copy the current image path to the clipboard", Category: HelpCategoryImages},

	KeyCommand: {Description: "Enter command mode (: or /)", Category: HelpCategoryOther},
	KeyHelp:    {Description: "Toggle this help screen", Category: HelpCategoryOther},
	KeyEsc:     {Description: "Close the help screen", Category: HelpCategoryOther},
	KeyQuit:    {Description: "Quit the application", Category: HelpCategoryOther},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(keyName KeyName) KeyHelpInfo {
	info, exists := KeyHelpMap[keyName]
	if !exists {
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUncategory,
		}
	}
	return info
}

// GetKeysInCategory returns all key bindings in a given category, in declaration order.
func GetKeysInCategory(category HelpCategory) []KeyName {
	var keys []KeyName
	for k, info := range KeyHelpMap {
		if info.Category == category {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// GetAllCategories returns all categories that have at least one key, in display order.
func GetAllCategories() []HelpCategory {
	categoryMap := make(map[HelpCategory]bool)
	for _, info := range KeyHelpMap {
		categoryMap[info.Category] = true
	}

	categories := make([]HelpCategory, 0, len(categoryMap))
	for category := range categoryMap {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categoryOrder[categories[i]] < categoryOrder[categories[j]]
	})
	return categories
}
