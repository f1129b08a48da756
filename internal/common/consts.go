package common

// UnknownStr is the String() value of unrecognized enum values.
const UnknownStr = "unknown"

// GeneratorName identifies files written by this tool.
const GeneratorName = "wither-generator"

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by " + GeneratorName + ". DO NOT EDIT."
