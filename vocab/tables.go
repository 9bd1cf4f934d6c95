// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vocab

// The tables below are returned by functions so that every Set gets its own
// copy.

func functionNames() []string {
	return []string{
		// Numeric.
		"abs", "acos", "asin", "atan", "cos", "exp", "expt", "ln", "log",
		"sin", "sqrt", "tan", "mod", "trunc", "round", "floor", "ceil",

		// Selection and bit shift.
		"sel", "mux", "shl", "shr", "rol", "ror", "limit", "max", "min",

		// Arithmetic.
		"add", "div", "mul", "sub", "move",

		// Addresses and sizes.
		"adr", "adrinst", "size", "sizeof", "bit_adr", "bit_trunc", "ref",
		"__new", "__delete",

		// Standard function blocks.
		"rs", "sr", "ton", "tp", "tof", "ctd", "ctu", "ctud", "r_trig",
		"f_trig", "rtc", "sema",

		// Strings.
		"concat", "delete", "find", "insert", "left", "len", "replace",
		"right", "mid",

		"unpack",
	}
}

// functionPatterns match the conversion function families, e.g. INT_TO_REAL,
// TO_DINT and TRUNC_INT.
func functionPatterns() []string {
	return []string{
		`[A-Za-z_]*_TO_[A-Za-z_]*`,
		`(?:TO|FROM|TRUNC)_[A-Za-z_]*`,
	}
}

func keywordNames() []string {
	return []string{
		"true", "false",
		"exit", "continue", "return",
		"constant", "retain", "persistent",
		"public", "private", "protected", "internal", "abstract", "final",
		"of", "else", "elsif", "then", "do", "to", "by", "until",
		"__try", "__catch", "__finally", "__endtry",
		"task", "with", "using", "uses", "from",
		"or", "or_else", "and", "and_then", "not", "xor", "nor", "mod",
		"ge", "le", "eq", "ne", "gt", "lt",
		"extends", "implements", "this", "super",
		"pointer", "reference", "ref_to",
		"var_input", "var_output", "var_in_out", "var_temp", "var_global",
		"var_access", "var_external", "var_inst", "var_stat", "var_config",
	}
}

func typeNames() []string {
	return []string{
		"at",
		"bool", "byte", "word", "dword", "lword",
		"sint", "int", "dint", "lint", "usint", "uint", "udint", "ulint",
		"real", "lreal",
		"time", "ltime", "time_of_day", "tod", "ltod", "date", "ldate",
		"date_and_time", "dt", "ldt",
		"string", "wstring", "char", "wchar",
		"array",
		"any", "any_num", "any_int", "any_real", "any_bit", "any_string",
		"any_date",
		"ton",
	}
}

// blockNames are the structural keywords that pair with an END_ closer.
func blockNames() []string {
	return []string{
		"var", "program", "if", "case", "while", "for", "repeat",
		"function", "function_block", "struct", "configuration", "tcp",
		"resource", "channel", "library", "folder", "binaries", "includes",
		"sources", "action", "step", "initial_step", "transition", "type",
		"namespace", "implementation", "interface", "property", "get", "set",
		"method", "union", "class",
	}
}
