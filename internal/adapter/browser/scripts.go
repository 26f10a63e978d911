package browser

// bindingName is the window function the observer reports rows through.
const bindingName = "__bojNotionRow"

// observerJS installs a MutationObserver on #status-table that reports the
// first row whenever the table changes. It is safe to run more than once
// per document and waits for the table when run before the DOM is ready.
const observerJS = `() => {
	const install = () => {
		if (window.__bojNotionObserver) return;
		const table = document.getElementById("status-table");
		if (!table) return;

		const report = () => {
			const row = document.querySelector("#status-table tbody tr");
			if (!row || typeof window.` + bindingName + ` !== "function") return;
			const text = (sel) => {
				const el = row.querySelector(sel);
				return el ? el.innerText.trim() : "";
			};
			window.` + bindingName + `({
				rowId: row.id || "",
				verdict: text(".result-text"),
				language: text("td:nth-child(7)"),
				problemId: text('a[href^="/problem/"]'),
			});
		};

		window.__bojNotionObserver = new MutationObserver(report);
		window.__bojNotionObserver.observe(table, { childList: true, subtree: true, characterData: true });
	};

	if (document.readyState === "loading") {
		document.addEventListener("DOMContentLoaded", install);
	} else {
		install();
	}
}`

// toastJS shows a single toast in the top right corner. Info toasts stay
// until replaced; the others fade after four seconds.
const toastJS = `(message, level) => {
	const existing = document.getElementById("boj-notion-toast");
	if (existing) existing.remove();

	const colors = { info: "#2196F3", success: "#4CAF50", error: "#F44336" };
	const icons = { info: "🤖", success: "✅", error: "❌" };

	const toast = document.createElement("div");
	toast.id = "boj-notion-toast";
	Object.assign(toast.style, {
		position: "fixed",
		top: "20px",
		right: "20px",
		padding: "15px 20px",
		borderRadius: "8px",
		color: "white",
		fontWeight: "bold",
		zIndex: "9999",
		boxShadow: "0 4px 6px rgba(0,0,0,0.2)",
		fontSize: "14px",
		display: "flex",
		alignItems: "center",
		gap: "10px",
		transition: "opacity 0.5s",
		backgroundColor: colors[level] || colors.info,
	});

	const icon = document.createElement("span");
	icon.textContent = icons[level] || icons.info;
	toast.appendChild(icon);
	toast.appendChild(document.createTextNode(" " + message));
	document.body.appendChild(toast);

	if (level !== "info") {
		setTimeout(() => {
			toast.style.opacity = "0";
			setTimeout(() => toast.remove(), 500);
		}, 4000);
	}
	return true;
}`
