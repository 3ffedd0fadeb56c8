package analyzer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const authController = `const User = require("../models/user.model");

const registerUser = async (req, res) => {
  const { name, email, password, phone } = req.body;
  if (phone) {
    console.log("phone provided");
  }
  res.status(201).json({ ok: true });
};

const loginUser = async (req, res) => {
  const { email, password } = req.body;
  res.json({ email });
};

async function verifyOtp(req, res) {
  const { email, otp } = req.body;
  res.json({ ok: true });
}

function resendOtp(req, res) {
  const { email } = req.body;
  res.json({ ok: true });
}

exports.resetPassword = async (req, res) => {
  const { email, otp, password: newPassword } = req.body;
  res.json({ ok: true });
};

module.exports = { registerUser, loginUser, verifyOtp, resendOtp };
`

const userController = `const getAllUsers = async (req, res) => {
  res.json([]);
};

const createUserByAdmin = async (req, res) => {
  const { name, email, role, phone } = req.body;
  const assigned = role || "user";
  const contact = phone ? phone : null;
  res.status(201).json({ name, email, assigned, contact });
};

const updateUser = async (req, res) => {
  const { name = "", email, phone } = req.body;
  res.json({ name, email, phone });
};

const deleteUser = async (req, res) => {
  res.status(204).end();
};
`

// writeProject lays out files relative to a fresh temp root and returns the root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func sampleProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"controllers/auth.controller.js": authController,
		"controllers/user.controller.js": userController,
		"controllers/README.md":          "# controllers",
	})
}

type recordingRecorder struct {
	methods  []string
	outcomes []string
	passes   int
}

func (r *recordingRecorder) RouteListed(method string)       { r.methods = append(r.methods, method) }
func (r *recordingRecorder) SchemaOutcome(outcome string)    { r.outcomes = append(r.outcomes, outcome) }
func (r *recordingRecorder) ListingDuration(_ time.Duration) { r.passes++ }
