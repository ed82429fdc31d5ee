package a11y

// rulesJS is the self-contained rule pass injected into the page. It
// returns a JSON string so the result survives any CDP serialization
// quirks. Selectors in findings reuse id/class shapes so they can feed
// straight back into healing catalogs.
const rulesJS = `() => {
	const violations = [];

	function describe(el) {
		if (el.id) return '#' + el.id;
		const tag = el.tagName.toLowerCase();
		if (el.className && typeof el.className === 'string') {
			const cls = el.className.trim().split(/\s+/)[0];
			if (cls) return tag + '.' + cls;
		}
		return tag;
	}

	// Images without alternative text.
	document.querySelectorAll('img:not([alt])').forEach(el => {
		violations.push({
			rule: 'image-alt',
			severity: 'serious',
			selector: describe(el),
			summary: 'image has no alt attribute'
		});
	});

	// Form controls without an associated label.
	document.querySelectorAll('input:not([type="hidden"]):not([type="submit"]):not([type="button"]), select, textarea').forEach(el => {
		const labelled = el.labels && el.labels.length > 0;
		const named = el.getAttribute('aria-label') || el.getAttribute('aria-labelledby') || el.getAttribute('title');
		if (!labelled && !named) {
			violations.push({
				rule: 'label',
				severity: 'critical',
				selector: describe(el),
				summary: 'form control has no associated label'
			});
		}
	});

	// Buttons and links without an accessible name.
	document.querySelectorAll('button, a[href], [role="button"]').forEach(el => {
		const text = (el.textContent || '').trim();
		const named = el.getAttribute('aria-label') || el.getAttribute('aria-labelledby') || el.getAttribute('title');
		if (!text && !named) {
			violations.push({
				rule: 'name',
				severity: 'serious',
				selector: describe(el),
				summary: el.tagName.toLowerCase() + ' has no accessible name'
			});
		}
	});

	// Document language.
	if (!document.documentElement.getAttribute('lang')) {
		violations.push({
			rule: 'html-lang',
			severity: 'serious',
			selector: 'html',
			summary: 'document has no lang attribute'
		});
	}

	// Duplicate ids break label/aria references.
	const seen = new Map();
	document.querySelectorAll('[id]').forEach(el => {
		const id = el.id;
		seen.set(id, (seen.get(id) || 0) + 1);
	});
	seen.forEach((count, id) => {
		if (count > 1) {
			violations.push({
				rule: 'duplicate-id',
				severity: 'moderate',
				selector: '#' + id,
				summary: 'id occurs ' + count + ' times'
			});
		}
	});

	return JSON.stringify(violations);
}`
