package runtime

// This is the shared helper that every wrapped class calls once its class
// object exists. It's parsed like any other file and then merged into the
// file being transformed, so it must stay within the syntax the parser
// supports.

import (
	"fmt"

	"github.com/classhook/classhook/internal/logger"
)

const code = `
	var %s = function(child, parent, childName) {
		if (childName !== void 0) {
			Object.defineProperty(child, "name", { value: childName, configurable: true });
		}
		if (parent != null && "extended" in parent) {
			if (typeof parent.extended == "function") {
				var returned = parent.extended(child);
				if (returned !== void 0) {
					if (childName !== void 0 && typeof returned == "function" && returned.name !== childName) {
						Object.defineProperty(returned, "name", { value: childName, configurable: true });
					}
					child = returned;
				}
			} else {
				throw new TypeError("Attempted to call extended, but it was not a function");
			}
		}
		return child;
	};
`

func Source(helperName string) logger.Source {
	return logger.Source{
		PrettyPath: "<runtime>",
		Contents:   fmt.Sprintf(code, helperName),
	}
}
