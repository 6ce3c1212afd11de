// Package naming parses whole-slide-image filenames that follow the
// pathology lab's nine-field convention:
//
//	{specimen}_{participant}_{biopsyid}_{slideid}_{imageid}_{blocknumber}_{slidenumber}_{department}_{stain}.{svs|ndpi}
//
// Example:
//
//	kidney_00040_00132_001227_002215_01_01_SOH_12710003.svs
//
// Fields never contain underscores; the stain field never contains a dot.
// Individual fields may be empty (two adjacent underscores); callers decide
// which fields are required.
package naming
