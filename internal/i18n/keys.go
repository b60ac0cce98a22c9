// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package i18n

// Message identifiers. Arguments are listed where a message takes them.
const (
	Starting          = "starting"           // time
	WorkingDir        = "working_dir"        // path
	OutputDir         = "output_dir"         // path
	DocLanguage       = "doc_language"       // language, source
	UILanguage        = "ui_language"        // language, source
	AutoDetected      = "auto_detected"
	UserSpecified     = "user_specified"
	ConfigFile        = "config_file"
	LoadedPrompt      = "loaded_prompt"
	CreatedAgent      = "created_agent"
	RegisteredTools   = "registered_tools"   // count, names
	Analyzing         = "analyzing"
	AgentTask         = "agent_task"
	AISummary         = "ai_summary"         // text
	Reading           = "reading"
	Listing           = "listing"
	Searching         = "searching"
	Executing         = "executing"
	ReadResult        = "read_result"        // lines, preview
	ReadResultBare    = "read_result_bare"   // lines
	ListResult        = "list_result"        // items, preview
	ListResultBare    = "list_result_bare"   // items
	SearchResult      = "search_result"      // matches, preview
	SearchResultBare  = "search_result_bare" // matches
	NoMatches         = "no_matches"
	ResultPreview     = "result_preview"     // preview
	CommandSuccess    = "command_success"
	ToolDone          = "tool_done"
	TaskPlanning      = "task_planning"
	GeneratingDoc     = "generating_doc"     // n, file
	AnalyzingStruct   = "analyzing_struct"
	VerboseStep       = "verbose_step"       // n, kind
	VerboseToolCalls  = "verbose_tool_calls" // n
	VerboseInspectErr = "verbose_inspect"    // error
	Completed         = "completed"
	Summary           = "summary"
	GeneratedFiles    = "generated_files"    // n
	DocLocation       = "doc_location"       // path
	ExecutionSteps    = "execution_steps"    // n
	GeneratedFileList = "generated_list"
	Interrupted       = "interrupted"
	ErrorLine         = "error_line"         // error
	DocsDirMissing    = "docs_dir_missing"   // path
	DocsDirHint       = "docs_dir_hint"
	ServerStarting    = "server_starting"    // url
	ServerDirectory   = "server_directory"   // path
	ServerStop        = "server_stop"
	ConfirmOverwrite  = "confirm_overwrite"  // path
	Aborted           = "aborted"
	FetchingSource    = "fetching_source"    // url
	TableOfContents   = "table_of_contents"
	NotFound          = "not_found"          // path
)
