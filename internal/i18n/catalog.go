// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

var english = map[string]string{
	Starting:          "🚀 Starting CodeViewX Documentation Generator - %s",
	WorkingDir:        "📂 Working directory: %s",
	OutputDir:         "📝 Output directory: %s",
	DocLanguage:       "🌍 Document language: %s (%s)",
	UILanguage:        "🗣️  UI language: %s (%s)",
	AutoDetected:      "auto-detected",
	UserSpecified:     "user-specified",
	ConfigFile:        "config file",
	LoadedPrompt:      "✓ Loaded system prompt",
	CreatedAgent:      "✓ Created AI agent",
	RegisteredTools:   "✓ Registered %d tools: %s",
	Analyzing:         "📝 Analyzing project and generating documentation...",
	AgentTask:         "Please generate complete technical documentation for this project according to the system prompt.",
	AISummary:         "💭 AI: %s",
	Reading:           "📖 Reading",
	Listing:           "📁 Listing",
	Searching:         "🔎 Searching",
	Executing:         "⚙️  Executing",
	ReadResult:        "✓ %d lines | %s",
	ReadResultBare:    "✓ %d lines",
	ListResult:        "✓ %d items | %s",
	ListResultBare:    "✓ %d items",
	SearchResult:      "✓ %d matches | %s",
	SearchResultBare:  "✓ %d matches",
	NoMatches:         "✓ no matches",
	ResultPreview:     "✓ %s",
	CommandSuccess:    "✓ success",
	ToolDone:          "✓ done",
	TaskPlanning:      "📋 Task planning:",
	GeneratingDoc:     "📄 Generating document (%d): %s",
	AnalyzingStruct:   "🔍 Analyzing project structure...",
	VerboseStep:       "📍 Step %d - %s",
	VerboseToolCalls:  "🔧 Called %d tools:",
	VerboseInspectErr: "⚠️  Could not inspect tool call: %s",
	Completed:         "✅ Documentation generation complete!",
	Summary:           "📊 Summary:",
	GeneratedFiles:    "✓ Generated %d document files",
	DocLocation:       "✓ Location: %s/",
	ExecutionSteps:    "✓ Execution steps: %d",
	GeneratedFileList: "📄 Generated files:",
	Interrupted:       "⚠️  User interrupted",
	ErrorLine:         "❌ Error: %s",
	DocsDirMissing:    "❌ Error: documentation directory does not exist: %s",
	DocsDirHint:       "💡 Hint: run codeviewx first to generate the documentation",
	ServerStarting:    "🌐 Starting documentation server at %s",
	ServerDirectory:   "📂 Serving documentation from %s",
	ServerStop:        "Press Ctrl+C to stop the server",
	ConfirmOverwrite:  "Output directory %s is not empty. Continue and overwrite files? [y/N] ",
	Aborted:           "Aborted.",
	FetchingSource:    "⬇️  Fetching source from %s",
	TableOfContents:   "Contents",
	NotFound:          "File not found: %s",
}

var chinese = map[string]string{
	Starting:          "🚀 启动 CodeViewX 文档生成器 - %s",
	WorkingDir:        "📂 工作目录: %s",
	OutputDir:         "📝 输出目录: %s",
	DocLanguage:       "🌍 文档语言: %s (%s)",
	UILanguage:        "🗣️  界面语言: %s (%s)",
	AutoDetected:      "自动检测",
	UserSpecified:     "用户指定",
	ConfigFile:        "配置文件",
	LoadedPrompt:      "✓ 已加载系统提示词",
	CreatedAgent:      "✓ 已创建 AI 代理",
	RegisteredTools:   "✓ 已注册 %d 个工具: %s",
	Analyzing:         "📝 正在分析项目并生成文档...",
	AgentTask:         "请根据系统提示词为此项目生成完整的技术文档。",
	AISummary:         "💭 AI: %s",
	Reading:           "📖 读取",
	Listing:           "📁 列表",
	Searching:         "🔎 搜索",
	Executing:         "⚙️  执行",
	ReadResult:        "✓ %d 行 | %s",
	ReadResultBare:    "✓ %d 行",
	ListResult:        "✓ %d 项 | %s",
	ListResultBare:    "✓ %d 项",
	SearchResult:      "✓ %d 处匹配 | %s",
	SearchResultBare:  "✓ %d 处匹配",
	NoMatches:         "✓ 无匹配",
	ResultPreview:     "✓ %s",
	CommandSuccess:    "✓ 执行成功",
	ToolDone:          "✓ 完成",
	TaskPlanning:      "📋 任务规划:",
	GeneratingDoc:     "📄 正在生成文档 (%d): %s",
	AnalyzingStruct:   "🔍 正在分析项目结构...",
	VerboseStep:       "📍 步骤 %d - %s",
	VerboseToolCalls:  "🔧 调用了 %d 个工具:",
	VerboseInspectErr: "⚠️  无法解析工具调用: %s",
	Completed:         "✅ 文档生成完成!",
	Summary:           "📊 总结:",
	GeneratedFiles:    "✓ 生成了 %d 个文档文件",
	DocLocation:       "✓ 文档位置: %s/",
	ExecutionSteps:    "✓ 执行步骤: %d 步",
	GeneratedFileList: "📄 生成的文件:",
	Interrupted:       "⚠️  用户中断",
	ErrorLine:         "❌ 错误: %s",
	DocsDirMissing:    "❌ 错误: 文档目录不存在: %s",
	DocsDirHint:       "💡 提示: 请先运行 codeviewx 生成文档",
	ServerStarting:    "🌐 文档服务器已启动: %s",
	ServerDirectory:   "📂 文档目录: %s",
	ServerStop:        "按 Ctrl+C 停止服务器",
	ConfirmOverwrite:  "输出目录 %s 不为空。继续并覆盖文件吗? [y/N] ",
	Aborted:           "已取消。",
	FetchingSource:    "⬇️  正在获取源码: %s",
	TableOfContents:   "目录",
	NotFound:          "文件不存在: %s",
}

// englishPlurals replaces the English messages whose first argument is a count.
var englishPlurals = map[string]catalog.Message{
	ReadResult:       countSelect("✓ %d line | %s", "✓ %d lines | %s"),
	ReadResultBare:   countSelect("✓ %d line", "✓ %d lines"),
	ListResult:       countSelect("✓ %d item | %s", "✓ %d items | %s"),
	ListResultBare:   countSelect("✓ %d item", "✓ %d items"),
	SearchResult:     countSelect("✓ %d match | %s", "✓ %d matches | %s"),
	SearchResultBare: countSelect("✓ %d match", "✓ %d matches"),
	GeneratedFiles:   countSelect("✓ Generated %d document file", "✓ Generated %d document files"),
}

func countSelect(one, other string) catalog.Message {
	return plural.Selectf(1, "%d", plural.One, one, plural.Other, other)
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, msgs := range map[language.Tag]map[string]string{
		language.English: english,
		language.Chinese: chinese,
	} {
		for key, msg := range msgs {
			var err error

			if p, ok := englishPlurals[key]; ok && tag == language.English {
				err = b.Set(tag, key, p)
			} else {
				err = b.SetString(tag, key, msg)
			}

			if err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}
