package crypto

const (
	// generic error message
	LV_ERR_DETAIL = 1
	// error stack or DEBUG
	LV_ERR_STACK = 2

	LV_GEN_FOUND   = 1 // dhgen
	LV_GROUP_CACHE = 2 // groups
	LV_GEN_RETRY   = 3 // dhgen
)
