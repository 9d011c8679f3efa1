// Package template implements the rename-template mini-language.
//
// A template is parsed once into an immutable token sequence and can then be
// evaluated against many files. Directives:
//
//	%%          literal percent sign
//	%B          base name of the file, without extension
//	%E          extension including the leading dot, empty if none
//	%C[sep]     ancestor folder names, outermost first, joined with sep;
//	            %C without brackets uses the parser's default separator
//	%T<k><fmt>  timestamp k (C created, M modified, A accessed, L least)
//	            formatted with fmt
//
// A timestamp format runs until the next recognized directive or the end of
// the template and is handed to strftime with a leading percent sign, so its
// first character is a conversion code: "%TCd-%TCb-%TCY" and "%TCd-%b-%Y"
// both render "10-Jun-2019". Any other %-sequence outside a timestamp format
// is a parse error.
package template
