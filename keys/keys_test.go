package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringsMapMatchesBindings(t *testing.T) {
	for s, name := range GlobalKeyStringsMap {
		binding, ok := GlobalkeyBindings[name]
		if !ok {
			t.Errorf("key %q maps to %d which has no binding", s, name)
			continue
		}
		assert.Contains(t, binding.Keys(), s)
	}
	for name, binding := range GlobalkeyBindings {
		for _, s := range binding.Keys() {
			assert.Equal(t, name, GlobalKeyStringsMap[s], "binding key %q", s)
		}
	}
}

func TestEveryBindingHasHelp(t *testing.T) {
	for name := range GlobalkeyBindings {
		info := GetKeyHelp(name)
		assert.NotEqual(t, HelpCategoryUncategory, info.Category, "key %d", name)
	}
	assert.Equal(t, HelpCategoryUncategory, GetKeyHelp(KeyName(99)).Category)
}

func TestCategories(t *testing.T) {
	assert.Equal(t,
		[]HelpCategory{HelpCategoryNavigation, HelpCategoryImages, HelpCategoryOther},
		GetAllCategories())
	assert.Equal(t, []KeyName{KeyNext, KeyPrev, KeyFirst, KeyLast}, GetKeysInCategory(HelpCategoryNavigation))
}
