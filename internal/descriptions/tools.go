package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Record Tools
	PayreqValidateDescription = `Check whether a payment-request record is complete enough to print.

**When to use:** Before rendering, saving or sharing a record, or to show the user every missing field at once.

**Why it's useful:** Reports all violated rules together with the exact Vietnamese messages shown on the form, so a caller can fix everything in one pass.

**Examples:**
• Pre-flight check: "Validate this record before generating the final PDF"
• Form feedback: "List every missing field so the user can complete the form"

**Common workflows:**
1. Form Entry: Validate → Show messages → Re-validate → Render
2. Automation: Validate batch records → Skip invalid ones → Report failures

**Best practices:** Run before every render tool; the render tools validate too, but this one returns the full message list without side effects.`

	PayreqRenderFileDescription = `Generate the payment-request PDF and save it into the configured output directory.

**When to use:** Need the final printable document as a file on disk, the equivalent of downloading it.

**Why it's useful:** Produces the complete A4 form with header block, numbered fields, line-item table and signature sections, and returns the written path.

**Examples:**
• Final document: "Render request PR-2025-001 with a PENDING watermark"
• Draft copy: "Save an unwatermarked draft of the current record"

**Common workflows:**
1. Approval Flow: Validate → Render with status watermark → Route for signatures
2. Archiving: Render → Store path → Attach to the accounting system

**Best practices:** Omit the filename to get the standard payment-request-<number>-<date>.pdf name; set show_watermark for any non-final status.`

	PayreqRenderBase64Description = `Generate the payment-request PDF and return it base64-encoded.

**When to use:** The document must be embedded in another payload, such as an email attachment or an API response, instead of written to disk.

**Why it's useful:** Avoids any filesystem round-trip; the caller decodes the string and has the exact PDF bytes.

**Examples:**
• Email attachment: "Render the record and attach the decoded bytes to an approval email"
• API hand-off: "Return the document inline to a web client"

**Common workflows:**
1. Notification: Render base64 → Decode → Attach → Send
2. Integration: Render base64 → Forward to a document management API

**Best practices:** For large batches prefer payreq_render_file; base64 inflates the payload by about a third.`

	PayreqPreviewDescription = `Render the document to a temporary file and open it in the platform PDF viewer.

**When to use:** A human wants to see the document before printing or submitting it.

**Why it's useful:** One call renders and opens the viewer; the temporary path is returned as a handle for follow-up actions.

**Examples:**
• Visual check: "Preview the request so I can verify the line items before printing"

**Common workflows:**
1. Review Loop: Preview → Adjust record → Preview again → Render final file

**Best practices:** Requires a desktop environment with xdg-open or open; headless hosts get a clear environment error instead of a silent failure.`

	PayreqPrintDescription = `Render the document and send it straight to the default printer.

**When to use:** The signed paper form is needed and the host has a CUPS print queue.

**Why it's useful:** Skips the manual open-then-print step; the artifact goes directly to lp.

**Examples:**
• Paper flow: "Print request PR-2025-001 for wet-ink signatures"

**Common workflows:**
1. Submission: Validate → Print → Collect signatures → Scan and archive

**Best practices:** Check that lp is installed; the tool reports an environment error when no print command is available.`

	PayreqShareDescription = `Render the document and hand it to the configured share command.

**When to use:** The deployment has a site-specific way to distribute documents, such as an uploader script or messaging bridge.

**Why it's useful:** Decouples document generation from delivery; whatever command PAYREQ_SHARECMD names receives the rendered file path.

**Examples:**
• Chat delivery: "Share the rendered request through the team's upload script"

**Common workflows:**
1. Distribution: Render → Share → Confirm delivery → Archive

**Best practices:** Without a configured command the tool returns "không hỗ trợ chia sẻ"; configure PAYREQ_SHARECMD before relying on it.`

	PayreqEstimateSizeDescription = `Render the document in memory and report its size in bytes.

**When to use:** Need to know how large the artifact will be before attaching, uploading or storing it.

**Why it's useful:** Returns the exact size of the real render together with a human-readable form, without writing anything to disk.

**Examples:**
• Attachment limits: "Check the PDF stays under the mail server's attachment cap"

**Common workflows:**
1. Pre-flight: Estimate size → Choose delivery channel → Render and send

**Best practices:** The estimate is exact because the document is actually rendered; cache the result if you render immediately afterwards.`

	// Field Tools
	PayreqAmountWordsDescription = `Spell out a VND amount in Vietnamese words.

**When to use:** Filling the "Bằng chữ" line of the form, or any place an amount must appear in words.

**Why it's useful:** Handles Vietnamese grouping rules (nghìn, triệu, tỷ) and the mốt/lẻ/mười irregularities, and always ends with "đồng".

**Examples:**
• Form field: "5000000 → năm triệu đồng"
• Verification: "Confirm the words on a submitted form match its amount"

**Common workflows:**
1. Form Entry: Enter amount → Convert to words → Store both on the record

**Best practices:** The record tools already keep amountInWords in sync; use this tool for standalone conversions.`

	PayreqImportItemsDescription = `Convert amount-first rows from an external source into the record's line items.

**When to use:** Line items come from a spreadsheet or another system that provides row totals rather than unit prices.

**Why it's useful:** Back-computes unit prices from totals, renumbers rows, enforces the form's bounds and reports the first bad row by position.

**Examples:**
• Spreadsheet import: "Import these 12 rows exported from the budget sheet"
• System hand-off: "Load line items from the purchasing system's response"

**Common workflows:**
1. Bulk Entry: Import rows → Review computed prices → Validate → Render

**Best practices:** A failed import leaves the record untouched; fix the reported row (1-based index) and retry with the full list.`

	// Draft Tools
	PayreqDraftSaveDescription = `Store the record as a resumable draft and return its key.

**When to use:** The user wants to pause form entry and continue later, or a workflow needs a checkpoint before approval.

**Why it's useful:** Drafts are sanitized (attachments stripped), versioned and expire automatically, so stale or incompatible payloads never resurface.

**Examples:**
• Pause work: "Save what I have so far and give me the key"

**Common workflows:**
1. Long Form Entry: Save draft → Resume with payreq_draft_load → Complete → Render

**Best practices:** Keep the returned key; drafts expire after the configured TTL (7 days by default).`

	PayreqDraftLoadDescription = `Load a previously saved draft by its key.

**When to use:** Resuming form entry from a payreq_draft_save checkpoint.

**Why it's useful:** Returns an isolated copy of the stored record; expired or incompatible drafts are reported as not found rather than returned corrupted.

**Examples:**
• Resume work: "Load draft 0b5c… and continue editing the line items"

**Common workflows:**
1. Resume: Load draft → Edit → Save again or render

**Best practices:** Handle the not-found case gracefully; it covers unknown keys, expiry and payload-version changes alike.`

	// Utility Tools
	PayreqServerInfoDescription = `Get server status, configuration and the list of available tools.

**When to use:** Starting a session, troubleshooting configuration, or discovering capabilities.

**Why it's useful:** Shows the output directory, company identity block, font status and draft count in one call.

**Examples:**
• Session start: "Check the server is configured with the right company header"

**Common workflows:**
1. Startup: Check info → Verify configuration → Begin rendering

**Best practices:** Run first in new sessions; a missing UTF-8 font shows up here before it shows up as mangled diacritics in output.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"payreq_validate":      PayreqValidateDescription,
	"payreq_render_file":   PayreqRenderFileDescription,
	"payreq_render_base64": PayreqRenderBase64Description,
	"payreq_preview":       PayreqPreviewDescription,
	"payreq_print":         PayreqPrintDescription,
	"payreq_share":         PayreqShareDescription,
	"payreq_estimate_size": PayreqEstimateSizeDescription,
	"payreq_amount_words":  PayreqAmountWordsDescription,
	"payreq_import_items":  PayreqImportItemsDescription,
	"payreq_draft_save":    PayreqDraftSaveDescription,
	"payreq_draft_load":    PayreqDraftLoadDescription,
	"payreq_server_info":   PayreqServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
