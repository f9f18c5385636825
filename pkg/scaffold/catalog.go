package scaffold

// Template roots inside the catalog.
const (
	rootCommon    = "common/"
	rootVueCommon = "vue-common/"
	rootQuasar    = "quasar/"
)

// Template identifiers with a role outside the plain file lists.
const (
	FilterTemplateID            = rootQuasar + "components/foo/FooFilter.vue"
	ConfigTemplateID            = rootCommon + "utils/config.ts"
	CommonTranslationTemplateID = rootQuasar + "i18n/common.ts"
	ResourceTranslationID       = rootQuasar + "i18n/foo.ts"
)

// catalogEntry pairs a template with the path it renders to, relative to the
// output directory. Resource paths carry %s verbs expanded with the lower
// case name first and the capitalised title second.
type catalogEntry struct {
	template string
	path     string
}

var sharedDirectories = []string{
	"components/common",
	"composables",
	"i18n",
	"i18n/en-US",
	"router",
	"types",
	"utils",
}

var resourceDirectories = []string{
	"components/%s",
	"pages/%s",
	"stores/%s",
}

var sharedFiles = []catalogEntry{
	{rootQuasar + "components/common/CommonActionCell.vue", "components/common/CommonActionCell.vue"},
	{rootQuasar + "components/common/CommonBreadcrumb.vue", "components/common/CommonBreadcrumb.vue"},
	{rootQuasar + "components/common/CommonConfirmDelete.vue", "components/common/CommonConfirmDelete.vue"},
	{rootQuasar + "components/common/CommonDataFilter.vue", "components/common/CommonDataFilter.vue"},
	{rootQuasar + "components/common/CommonFormRepeater.vue", "components/common/CommonFormRepeater.vue"},
	{rootQuasar + "components/common/CommonLoading.vue", "components/common/CommonLoading.vue"},
	{rootQuasar + "components/common/CommonToolbar.vue", "components/common/CommonToolbar.vue"},

	{rootQuasar + "composables/breadcrumb.ts", "composables/breadcrumb.ts"},
	{rootQuasar + "composables/errors.ts", "composables/errors.ts"},
	{rootVueCommon + "composables/mercureItem.ts", "composables/mercureItem.ts"},
	{rootVueCommon + "composables/mercureList.ts", "composables/mercureList.ts"},
	{rootQuasar + "composables/notifications.ts", "composables/notifications.ts"},

	{rootQuasar + "types/breadcrumb.ts", "types/breadcrumb.ts"},
	{rootCommon + "types/collection.ts", "types/collection.ts"},
	{rootCommon + "types/error.ts", "types/error.ts"},
	{rootCommon + "types/item.ts", "types/item.ts"},
	{rootQuasar + "types/list.ts", "types/list.ts"},
	{rootCommon + "types/view.ts", "types/view.ts"},

	{rootCommon + "utils/api.ts", "utils/api.ts"},
	{rootCommon + "utils/date.ts", "utils/date.ts"},
	{rootCommon + "utils/error.ts", "utils/error.ts"},
	{rootCommon + "utils/mercure.ts", "utils/mercure.ts"},
}

var resourceFiles = []catalogEntry{
	{rootQuasar + "components/foo/FooCreate.vue", "components/%s/%sCreate.vue"},
	{FilterTemplateID, "components/%s/%sFilter.vue"},
	{rootQuasar + "components/foo/FooForm.vue", "components/%s/%sForm.vue"},
	{rootQuasar + "components/foo/FooList.vue", "components/%s/%sList.vue"},
	{rootQuasar + "components/foo/FooShow.vue", "components/%s/%sShow.vue"},
	{rootQuasar + "components/foo/FooUpdate.vue", "components/%s/%sUpdate.vue"},

	{rootQuasar + "pages/foo/PageCreate.vue", "pages/%s/PageCreate.vue"},
	{rootQuasar + "pages/foo/PageList.vue", "pages/%s/PageList.vue"},
	{rootQuasar + "pages/foo/PageShow.vue", "pages/%s/PageShow.vue"},
	{rootQuasar + "pages/foo/PageUpdate.vue", "pages/%s/PageUpdate.vue"},

	{rootQuasar + "router/foo.ts", "router/%s.ts"},

	{rootQuasar + "stores/foo/create.ts", "stores/%s/create.ts"},
	{rootQuasar + "stores/foo/delete.ts", "stores/%s/delete.ts"},
	{rootQuasar + "stores/foo/list.ts", "stores/%s/list.ts"},
	{rootQuasar + "stores/foo/show.ts", "stores/%s/show.ts"},
	{rootQuasar + "stores/foo/update.ts", "stores/%s/update.ts"},

	{rootCommon + "types/foo.ts", "types/%s.ts"},
}

// TemplateIDs lists every template the planner can reference, in catalog
// order. Renderers use it to verify a template set is complete.
func TemplateIDs() []string {
	ids := make([]string, 0, len(sharedFiles)+len(resourceFiles)+3)
	for _, entry := range sharedFiles {
		ids = append(ids, entry.template)
	}
	for _, entry := range resourceFiles {
		ids = append(ids, entry.template)
	}
	return append(ids, ConfigTemplateID, CommonTranslationTemplateID, ResourceTranslationID)
}
