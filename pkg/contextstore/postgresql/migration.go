package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create workflow_execution_contexts table
			CREATE TABLE workflow_execution_contexts (
				id VARCHAR(255) PRIMARY KEY,
				workflow_id VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL,
				inputs JSONB DEFAULT '{}',
				metadata JSONB DEFAULT '{}',
				triggered_by VARCHAR(255),
				results JSONB DEFAULT '{}',
				highlights JSONB DEFAULT '[]',
				steps_completed INT NOT NULL DEFAULT 0,
				total_steps INT NOT NULL DEFAULT 0,
				error_message TEXT,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				completed_at TIMESTAMP WITH TIME ZONE,
				expires_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_execution_contexts_workflow_id ON workflow_execution_contexts(workflow_id);
			CREATE INDEX idx_execution_contexts_status ON workflow_execution_contexts(status);
			CREATE INDEX idx_execution_contexts_expires_at ON workflow_execution_contexts(expires_at);

			-- Create workflow_execution_index table for domain key lookups
			CREATE TABLE workflow_execution_index (
				index_key VARCHAR(255) PRIMARY KEY,
				execution_id VARCHAR(255) NOT NULL,
				expires_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_execution_index_execution_id ON workflow_execution_index(execution_id);
			CREATE INDEX idx_execution_index_expires_at ON workflow_execution_index(expires_at);
		`,
	}
}
