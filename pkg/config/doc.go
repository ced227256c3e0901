// Package config loads patch plans for markpatch.
//
//	            +-------------+
//	            |   Config    |
//	            |  (Patches)  |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   HCL    | |   JSON   |
//	|  Parser  | |  Parser  | |  Parser  |
//	+----------+ +----------+ +----------+
//
// 🎯 Purpose:
// - Describe which files get which region replaced, declaratively
// - Reject plans whose fields do not fit the chosen mode before any file is read
//
// 📝 A plan holds named patches. Each patch names its files with doublestar
// globs, a mode (tail, bounded, rebuild), its markers and the replacement
// text, either inline or from a file next to the plan.
//
// 🔍 Example (HCL):
//
//	backup_suffix = ".backup"
//
//	patch "liquidation" {
//	  files            = ["src/extensions/TieredLiquidationMorpho.sol"]
//	  mode             = "rebuild"
//	  start            = "/* LIQUIDATION FUNCTIONS */"
//	  end              = "/* VIEW FUNCTIONS */"
//	  replacement_file = "src/extensions/TieredLiquidation_new_liquidate.txt"
//
//	  statement {
//	    keyword = "import"
//	    symbol  = "LiquidationTierLib"
//	  }
//	}
//
//	patch "internal" {
//	  files       = ["src/**/*.sol"]
//	  mode        = "tail"
//	  start       = "/* INTERNAL FUNCTIONS */"
//	  replacement = <<EOT
//	    /* INTERNAL FUNCTIONS */
//	EOT
//	  terminator  = "}\n"
//	}
//
// Environment variables are available in HCL plans as env.NAME.
package config
